package content

// Default content library written to the data directory on first run.

var defaultJavaScriptTips = []string{
	"Use `const` by default and `let` only when you need to reassign. It makes the intent of every binding obvious at a glance.",
	"`Array.prototype.at(-1)` gives you the last element without the `arr[arr.length - 1]` dance.",
	"Optional chaining `obj?.a?.b` short-circuits to `undefined` instead of throwing when a link in the chain is missing.",
	"`Object.freeze()` is shallow. Nested objects stay mutable unless you freeze them too.",
	"Prefer `===` over `==`. Loose equality coerces types in ways that are hard to predict (`'' == 0` is true).",
	"`Promise.allSettled()` waits for every promise and never rejects, which is what you usually want when firing independent requests.",
	"Template literals can span multiple lines and interpolate expressions: `${user.name} (${user.age})`.",
	"Destructuring with defaults, `const { retries = 3 } = options`, beats `options.retries || 3` because it only falls back on `undefined`.",
	"`structuredClone()` deep-copies objects including Maps, Sets and Dates. No more JSON.parse(JSON.stringify(...)).",
	"Named function expressions show up in stack traces. `const handler = function handleClick() {}` is easier to debug than an anonymous arrow.",
	"`Number.isNaN()` is safer than the global `isNaN()`, which coerces its argument first (`isNaN('foo')` is true).",
	"Use `Array.from({ length: n }, (_, i) => i)` to build an index range without a loop.",
}

var defaultReactTips = []string{
	"Keys tell React which list items changed. Using the array index as a key breaks reordering; use a stable id from the data.",
	"State updates are batched. If the next state depends on the previous one, pass a function: `setCount(c => c + 1)`.",
	"An empty dependency array on `useEffect` means run once after mount. Omitting the array means run after every render. They are not the same.",
	"Lift state up only as far as the closest common ancestor that needs it. Global state for everything makes components hard to reuse.",
	"`useMemo` and `useCallback` are for keeping referential identity stable, not for making slow code fast. Measure before adding them.",
	"Derived data does not belong in state. If you can compute it from props or other state during render, just compute it.",
	"Controlled inputs keep the DOM value in React state. If you only need the value on submit, an uncontrolled input with a ref is less code.",
	"`React.StrictMode` double-invokes effects in development to surface missing cleanups. It is a feature, not a bug.",
	"Context re-renders every consumer when its value changes. Memoize the value object or split contexts by update frequency.",
	"Custom hooks are just functions that call other hooks. Extracting one is the cheapest way to share stateful logic between components.",
	"A component that returns `null` still runs its hooks. Bail out inside JSX, not by skipping hook calls.",
	"Error boundaries only catch errors thrown during render. Event handlers need their own try/catch.",
}

var defaultMCQs = []MCQ{
	{
		ID:            1,
		Question:      "What is the output of `console.log(typeof null)`?",
		Options:       []string{"null", "undefined", "object", "string"},
		CorrectAnswer: "object",
		Explanation:   "In JavaScript, typeof null returns 'object', which is considered a bug in the language kept for backwards compatibility.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:            2,
		Question:      "Which method adds one or more elements to the end of an array?",
		Options:       []string{"push()", "append()", "add()", "insert()"},
		CorrectAnswer: "push()",
		Explanation:   "push() appends elements to the end of an array and returns the new length.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:       3,
		Question: "What is the correct way to create a React functional component?",
		Options: []string{
			"function Component() { return <div>Hello</div>; }",
			"class Component { render() { return <div>Hello</div>; } }",
			"const Component = () => { <div>Hello</div> }",
			"component Component() { return <div>Hello</div>; }",
		},
		CorrectAnswer: "function Component() { return <div>Hello</div>; }",
		Explanation:   "A functional component is a plain function that returns JSX. The arrow variant without an explicit return renders nothing.",
		Category:      CategoryReact,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:            4,
		Question:      "What is the output of `console.log(1 + '2' + '2')`?",
		Options:       []string{"122", "32", "14", "NaN"},
		CorrectAnswer: "122",
		Explanation:   "The + operator converts 1 to a string because of the string operand, then concatenates everything.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:            5,
		Question:      "Which hook is used to store component state in a function component?",
		Options:       []string{"useState", "useEffect", "useContext", "useReducer only"},
		CorrectAnswer: "useState",
		Explanation:   "useState returns the current state value and a setter. useReducer also stores state but is not the only option.",
		Category:      CategoryReact,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:            6,
		Question:      "What does `[...new Set([1, 2, 2, 3])]` evaluate to?",
		Options:       []string{"[1, 2, 3]", "[1, 2, 2, 3]", "Set {1, 2, 3}", "TypeError"},
		CorrectAnswer: "[1, 2, 3]",
		Explanation:   "A Set stores unique values and the spread operator turns it back into an array, so duplicates are dropped.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:       7,
		Question: "When does a `useEffect` with an empty dependency array run?",
		Options: []string{
			"Once, after the first render",
			"After every render",
			"Before the first render",
			"Only when props change",
		},
		CorrectAnswer: "Once, after the first render",
		Explanation:   "An empty array means no dependency can change, so the effect runs once after mount (twice under StrictMode in development).",
		Category:      CategoryReact,
		Difficulty:    DifficultyEasy,
	},
	{
		ID:            8,
		Question:      "What is the output of `console.log(0.1 + 0.2 === 0.3)`?",
		Options:       []string{"true", "false", "undefined", "TypeError"},
		CorrectAnswer: "false",
		Explanation:   "0.1 and 0.2 cannot be represented exactly in binary floating point; the sum is 0.30000000000000004.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:       9,
		Question: "Why should you avoid using the array index as a React list key?",
		Options: []string{
			"Reordering items makes React mismatch DOM nodes and state",
			"Indexes are slower to compare than strings",
			"React throws a warning for numeric keys",
			"Indexes are not unique within a list",
		},
		CorrectAnswer: "Reordering items makes React mismatch DOM nodes and state",
		Explanation:   "Keys identify items across renders. When items move, index keys point at different items and component state sticks to the wrong row.",
		Category:      CategoryReact,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:            10,
		Question:      "What does `console.log([...'hello'].length)` print?",
		Options:       []string{"5", "1", "undefined", "SyntaxError"},
		CorrectAnswer: "5",
		Explanation:   "Strings are iterable, so the spread operator splits 'hello' into five single-character strings.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:            11,
		Question:      "What is the result of `typeof NaN`?",
		Options:       []string{"number", "NaN", "undefined", "object"},
		CorrectAnswer: "number",
		Explanation:   "NaN is a special numeric value defined by IEEE 754, so its type is 'number'.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:       12,
		Question: "Which statement about `useMemo` is correct?",
		Options: []string{
			"It recomputes the value only when a dependency changes",
			"It guarantees the value is never recomputed",
			"It memoizes across component unmounts",
			"It makes the wrapped function asynchronous",
		},
		CorrectAnswer: "It recomputes the value only when a dependency changes",
		Explanation:   "useMemo caches per mounted component instance and React may still drop the cache; it is an optimization hint, not a guarantee.",
		Category:      CategoryReact,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:            13,
		Question:      "What does `console.log(foo); var foo = 5;` print?",
		Options:       []string{"undefined", "5", "ReferenceError", "null"},
		CorrectAnswer: "undefined",
		Explanation:   "var declarations are hoisted with an initial value of undefined; only the assignment stays in place.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyMedium,
	},
	{
		ID:       14,
		Question: "What happens when you call `setState` with the same value the state already holds?",
		Options: []string{
			"React bails out and skips re-rendering the subtree",
			"React always re-renders anyway",
			"React throws in development mode",
			"The update is queued until the next prop change",
		},
		CorrectAnswer: "React bails out and skips re-rendering the subtree",
		Explanation:   "React compares with Object.is and bails out of the update when the value is unchanged, though it may still render the component once before bailing.",
		Category:      CategoryReact,
		Difficulty:    DifficultyHard,
	},
	{
		ID:            15,
		Question:      "What is the output of `console.log(('b' + 'a' + + 'a' + 'a').toLowerCase())`?",
		Options:       []string{"banana", "baNaNa", "ba+aa", "NaN"},
		CorrectAnswer: "banana",
		Explanation:   "The unary plus turns the second 'a' into NaN, producing 'baNaNa', which lowercases to 'banana'.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyHard,
	},
	{
		ID:            16,
		Question:      "In which order do these log: `setTimeout(() => log('A'), 0); Promise.resolve().then(() => log('B')); log('C');`?",
		Options:       []string{"C B A", "A B C", "C A B", "B C A"},
		CorrectAnswer: "C B A",
		Explanation:   "Synchronous code runs first, then the microtask queue (promises), then macrotasks like setTimeout.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyHard,
	},
	{
		ID:       17,
		Question: "Why can a stale closure appear inside a `useEffect` callback?",
		Options: []string{
			"The effect captured variables from a render that has since been replaced",
			"React freezes all variables used inside effects",
			"Effects run in a separate thread without access to current state",
			"The dependency array copies values by reference",
		},
		CorrectAnswer: "The effect captured variables from a render that has since been replaced",
		Explanation:   "Each render creates new bindings. An effect that omits a dependency keeps using the values from the render in which it last ran.",
		Category:      CategoryReact,
		Difficulty:    DifficultyHard,
	},
	{
		ID:            18,
		Question:      "What does `Object.is(-0, +0)` return?",
		Options:       []string{"false", "true", "TypeError", "undefined"},
		CorrectAnswer: "false",
		Explanation:   "Object.is distinguishes -0 from +0, unlike ===, which treats them as equal.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyHard,
	},
	{
		ID:            19,
		Question:      "Which tool lets React interrupt and resume rendering work?",
		Options:       []string{"The Fiber architecture", "The virtual DOM diff", "Synthetic events", "Portals"},
		CorrectAnswer: "The Fiber architecture",
		Explanation:   "Fiber splits rendering into units of work that can be paused, prioritized and resumed, enabling concurrent features.",
		Category:      CategoryReact,
		Difficulty:    DifficultyHard,
	},
	{
		ID:            20,
		Question:      "What does `JSON.stringify({ a: undefined, b: () => {}, c: 1 })` produce?",
		Options:       []string{`{"c":1}`, `{"a":null,"b":null,"c":1}`, `{"a":undefined,"c":1}`, "TypeError"},
		CorrectAnswer: `{"c":1}`,
		Explanation:   "JSON.stringify drops object properties whose values are undefined or functions.",
		Category:      CategoryJavaScript,
		Difficulty:    DifficultyMedium,
	},
}
