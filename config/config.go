package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LinkedIn      LinkedInConfig      `toml:"linkedin"`
	Instagram     InstagramConfig     `toml:"instagram"`
	Options       OptionsConfig       `toml:"options"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type LinkedInConfig struct {
	AccessToken string `toml:"access_token"`
	PersonID    string `toml:"person_id"`
}

type InstagramConfig struct {
	Enabled     bool   `toml:"enabled"`
	AccessToken string `toml:"access_token"`
	AccountID   string `toml:"account_id"`
}

type OptionsConfig struct {
	SaveLocation string `toml:"save_location"`
	CheckUpdates bool   `toml:"check_updates"`
	// ConsumeOnFailure keeps a failed MCQ publish counting as posted for
	// rotation purposes. Matches the historical behavior; set false to make
	// failed questions eligible again on the next question day.
	ConsumeOnFailure bool `toml:"consume_on_failure"`
}

type ScheduleConfig struct {
	TipTime         string   `toml:"tip_time"`          // "15:04" local time
	MCQTime         string   `toml:"mcq_time"`          // question and answer triggers share this time
	MCQQuestionDays []string `toml:"mcq_question_days"` // e.g. ["Monday","Wednesday","Friday"]
	MCQAnswerDays   []string `toml:"mcq_answer_days"`   // e.g. ["Tuesday","Thursday","Saturday"]
}

type NotificationsConfig struct {
	Enabled          bool   `toml:"enabled"`
	SystemNotify     bool   `toml:"system_notify"`
	DiscordWebhook   string `toml:"discord_webhook"`
	TelegramBotToken string `toml:"telegram_bot_token"`
	TelegramChatID   string `toml:"telegram_chat_id"`
}

func GetConfigPath() string {
	currentDirConfig := "config.toml"
	if _, err := os.Stat(currentDirConfig); err == nil {
		return currentDirConfig
	}

	return filepath.Join(GetConfigDir(), "config.toml")
}

func GetConfigDir() string {
	var configDir string
	var err error

	if runtime.GOOS == "darwin" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		configDir = filepath.Join(homeDir, ".config")
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			log.Fatal(err)
		}
	}

	return filepath.Join(configDir, "tipcast")
}

func SaveConfig(cfg *Config) error {
	configPath := GetConfigPath()
	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

func OpenConfigInEditor(configPath string) error {
	var cmd *exec.Cmd

	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", "start", "", configPath)
	} else {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vim"
		}
		cmd = exec.Command(editor, configPath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func CopyFile(srcPath string, dstPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

func EnsureConfigExists(configPath string) error {
	if _, err := os.Stat(filepath.Dir(configPath)); os.IsNotExist(err) {
		err = os.MkdirAll(filepath.Dir(configPath), os.ModePerm)
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Prefer an example config sitting next to the binary
		exampleConfig := filepath.Join("example-config.toml")
		if _, err := os.Stat(exampleConfig); err == nil {
			err = CopyFile(exampleConfig, configPath)
			if err != nil {
				log.Printf("Failed to copy example config: %v", err)
			} else {
				return nil
			}
		}

		defaultConfig := CreateDefaultConfig()
		if err := SaveConfig(defaultConfig); err != nil {
			return fmt.Errorf("failed to ensure config exists: %v", err)
		}
	}

	return nil
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, err
	}

	// A config without the key keeps the failed-publish-consumes behavior.
	if !md.IsDefined("options", "consume_on_failure") {
		config.Options.ConsumeOnFailure = true
	}

	if config.LinkedIn.AccessToken == "" {
		return nil, fmt.Errorf("linkedin access_token is empty in %v", configPath)
	}
	if config.LinkedIn.PersonID == "" {
		return nil, fmt.Errorf("linkedin person_id is empty in %v", configPath)
	}
	if config.Options.SaveLocation == "" {
		return nil, fmt.Errorf("save_location is empty in %v", configPath)
	}
	if config.Instagram.Enabled && config.Instagram.AccessToken == "" {
		return nil, fmt.Errorf("instagram is enabled but access_token is empty in %v", configPath)
	}

	config.Options.SaveLocation = filepath.ToSlash(config.Options.SaveLocation)

	if config.Schedule.TipTime == "" {
		config.Schedule.TipTime = "09:00"
	}
	if config.Schedule.MCQTime == "" {
		config.Schedule.MCQTime = "15:00"
	}
	if len(config.Schedule.MCQQuestionDays) == 0 {
		config.Schedule.MCQQuestionDays = []string{"Monday", "Wednesday", "Friday"}
	}
	if len(config.Schedule.MCQAnswerDays) == 0 {
		config.Schedule.MCQAnswerDays = []string{"Tuesday", "Thursday", "Saturday"}
	}
	if _, err := ParseClock(config.Schedule.TipTime); err != nil {
		return nil, fmt.Errorf("invalid tip_time %q in %v", config.Schedule.TipTime, configPath)
	}
	if _, err := ParseClock(config.Schedule.MCQTime); err != nil {
		return nil, fmt.Errorf("invalid mcq_time %q in %v", config.Schedule.MCQTime, configPath)
	}
	if _, err := ParseWeekdays(config.Schedule.MCQQuestionDays); err != nil {
		return nil, fmt.Errorf("invalid mcq_question_days in %v: %v", configPath, err)
	}
	if _, err := ParseWeekdays(config.Schedule.MCQAnswerDays); err != nil {
		return nil, fmt.Errorf("invalid mcq_answer_days in %v: %v", configPath, err)
	}

	return &config, nil
}

func CreateDefaultConfig() *Config {
	return &Config{
		LinkedIn: LinkedInConfig{
			AccessToken: "",
			PersonID:    "",
		},
		Instagram: InstagramConfig{
			Enabled:     false,
			AccessToken: "",
			AccountID:   "",
		},
		Options: OptionsConfig{
			SaveLocation:     "/path/to/save/data/to",
			CheckUpdates:     false,
			ConsumeOnFailure: true,
		},
		Schedule: ScheduleConfig{
			TipTime:         "09:00",
			MCQTime:         "15:00",
			MCQQuestionDays: []string{"Monday", "Wednesday", "Friday"},
			MCQAnswerDays:   []string{"Tuesday", "Thursday", "Saturday"},
		},
		Notifications: NotificationsConfig{
			Enabled:      false,
			SystemNotify: true,
		},
	}
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func ParseWeekdays(names []string) (map[time.Weekday]bool, error) {
	weekdays := map[string]time.Weekday{
		"Sunday":    time.Sunday,
		"Monday":    time.Monday,
		"Tuesday":   time.Tuesday,
		"Wednesday": time.Wednesday,
		"Thursday":  time.Thursday,
		"Friday":    time.Friday,
		"Saturday":  time.Saturday,
	}

	result := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		day, ok := weekdays[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		result[day] = true
	}
	return result, nil
}
