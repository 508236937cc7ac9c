package cmd

import (
	"flag"
)

type Flags struct {
	Version  bool
	Category string
	Image    string
	Message  string
}

// ParseFlags parses the command line. The first positional argument is the
// subcommand (run, post, stats, delete, service, update), the rest are its
// arguments.
func ParseFlags() (Flags, []string) {
	flags := Flags{}

	flag.BoolVar(&flags.Version, "v", false, "Display version information")
	flag.BoolVar(&flags.Version, "version", false, "Display version information")
	flag.StringVar(&flags.Category, "c", "", "Content category: javascript or react")
	flag.StringVar(&flags.Category, "category", "", "Content category: javascript or react")
	flag.StringVar(&flags.Message, "m", "", "Post body for 'post custom'")
	flag.StringVar(&flags.Message, "message", "", "Post body for 'post custom'")
	flag.StringVar(&flags.Image, "i", "", "Image path for 'post custom'")
	flag.StringVar(&flags.Image, "image", "", "Image path for 'post custom'")

	flag.Parse()

	return flags, flag.Args()
}
