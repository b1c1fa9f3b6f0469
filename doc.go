/* Package main: eacal -- a line at a time

An eacal program is a sequence of lines, each one command invocation: the
first whitespace separated token names the command, the rest are its
parameters. Lines run in order, one at a time, until the last line has run or
the program exits. Blank lines do nothing.

Commands receive their parameters as raw text, and most of them hand a tail of
those parameters back to the interpreter as a nested command; so

	print number 3

prints the value of "number 3", and

	push nums add-me number 4

pushes the value of "add-me number 4"... which is an error, unless add-me has
been defined. There is no other syntax: no quoting, no grouping, no operators.

Values

Commands produce numbers, strings, booleans, lists, patterns (from regex),
stacks, tapes and executables. Commands with nothing to say, like rem and
exit, produce undefined. Conversions follow a small set of familiar rules:
blank text is the number 0, unparseable text is NaN, lists print comma
separated.

Memory

A program has several independent places to keep things:

  - named stacks (init, push, pop, stack), one of which, "func", is where
    stack operators take their operands from by default; popping an empty
    stack produces 0
  - named tapes of numeric cells (initape, tape, setape, getape, setptr,
    getptr), each with an optional size, lower bound, upper bound, and default;
    values written outside the bounds wrap around into them, and reading past
    the upper bound is an error
  - a key/value object (set, get)
  - a text accumulator (strap, strcl)

Control

A "label NAME" line marks a jump target; "goto NAME" resumes execution at the
label line. "if CMD..." skips the following line when its command produces a
falsy value. "exit" stops the program once the current line is done.

Executables

Executables are things that can be applied to arguments:

  - stack operators, from "func NAME": add inc dec pow mul div sub replace
    less more same repeat slice charat tochar; these pop their operands from
    the stack named by their argument
  - closures, from "eval CMD..." or "curry CMD...", which dispatch their
    captured command with any arguments appended

"exec ARGS... -- CMD..." applies the executable CMD produces to ARGS, so

	push func 3
	push func 4
	print exec func -- func add

prints 7. "define NAME CMD..." makes NAME a new command applying an
executable; "alias NAME OTHER" copies the current meaning of another command.
Definitions are kept in a registry that outlives any one run.

Events

Every command dispatch triggers an event named after the command, carrying
its result. "on EVENT CMD..." adds a listener executable for an event; two
events are special: "jump" fires once a goto has moved the instruction
pointer, and "end" fires once after the program is done.

Errors

Mistakes like an unknown command or label stop the program with a diagnostic
naming the 0-based index of the line that failed:

	2: Error: "foo" is not a valid command.

*/
package main
