// Package cli is a small flag framework for the minic driver: long/short
// flags, prefix-matched toggle groups (-W.../-F...), and help output wrapped
// to the terminal width.
package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type Value interface {
	String() string
	Set(string) error
}

type stringValue struct{ p *string }

func (v *stringValue) Set(s string) error { *v.p = s; return nil }
func (v *stringValue) String() string     { return *v.p }

type boolValue struct{ p *bool }

func (v *boolValue) Set(s string) error {
	if s == "" {
		*v.p = true
		return nil
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean value '%s': %w", s, err)
	}
	*v.p = val
	return nil
}
func (v *boolValue) String() string { return strconv.FormatBool(*v.p) }

type listValue struct{ p *[]string }

func (v *listValue) Set(s string) error { *v.p = append(*v.p, s); return nil }
func (v *listValue) String() string     { return strings.Join(*v.p, ", ") }

type Flag struct {
	Name      string
	Shorthand string
	Usage     string
	Value     Value
	IsBool    bool
}

type FlagSet struct {
	name       string
	flags      map[string]*Flag
	shorthands map[string]*Flag
	prefixes   map[string]*Flag
	order      []*Flag
	args       []string
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{
		name:       name,
		flags:      make(map[string]*Flag),
		shorthands: make(map[string]*Flag),
		prefixes:   make(map[string]*Flag),
	}
}

func (f *FlagSet) Args() []string { return f.args }

func (f *FlagSet) String(p *string, name, shorthand, value, usage string) {
	*p = value
	f.addFlag(&Flag{Name: name, Shorthand: shorthand, Usage: usage, Value: &stringValue{p}})
}

func (f *FlagSet) Bool(p *bool, name, shorthand string, value bool, usage string) {
	*p = value
	f.addFlag(&Flag{Name: name, Shorthand: shorthand, Usage: usage, Value: &boolValue{p}, IsBool: true})
}

// Prefix collects every flag starting with the given prefix into a string
// list, e.g. all -W... warning toggles.
func (f *FlagSet) Prefix(p *[]string, prefix, usage string) {
	*p = nil
	flag := &Flag{Name: prefix, Usage: usage, Value: &listValue{p}}
	f.addFlag(flag)
	f.prefixes[prefix] = flag
}

func (f *FlagSet) addFlag(flag *Flag) {
	if _, ok := f.flags[flag.Name]; ok {
		panic("flag redefined: " + flag.Name)
	}
	f.flags[flag.Name] = flag
	f.order = append(f.order, flag)
	if flag.Shorthand != "" {
		if _, ok := f.shorthands[flag.Shorthand]; ok {
			panic("shorthand redefined: " + flag.Shorthand)
		}
		f.shorthands[flag.Shorthand] = flag
	}
}

func (f *FlagSet) Parse(arguments []string) error {
	f.args = nil
	for i := 0; i < len(arguments); i++ {
		arg := arguments[i]
		if len(arg) < 2 || arg[0] != '-' {
			f.args = append(f.args, arg)
			continue
		}
		if arg == "--" {
			f.args = append(f.args, arguments[i+1:]...)
			break
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}

		flag := f.flags[name]
		if flag == nil {
			flag = f.shorthands[name]
		}
		if flag == nil {
			if pf := f.matchPrefix(name); pf != nil {
				if err := pf.Value.Set(name); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("%s: unknown flag '%s'", f.name, arg)
		}

		if !hasValue && !flag.IsBool {
			if i+1 >= len(arguments) {
				return fmt.Errorf("%s: flag '%s' needs a value", f.name, arg)
			}
			i++
			value = arguments[i]
		}
		if err := flag.Value.Set(value); err != nil {
			return fmt.Errorf("%s: flag '%s': %w", f.name, arg, err)
		}
	}
	return nil
}

func (f *FlagSet) matchPrefix(name string) *Flag {
	for prefix, flag := range f.prefixes {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			return flag
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Usage prints a generated help text, one wrapped line per flag.
func (f *FlagSet) Usage(header string) {
	fmt.Fprintln(os.Stdout, header)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Options:")

	flags := make([]*Flag, len(f.order))
	copy(flags, f.order)
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })

	left := make([]string, len(flags))
	maxLeft := 0
	for i, flag := range flags {
		s := "  -" + flag.Name
		if flag.Shorthand != "" {
			s += ", -" + flag.Shorthand
		}
		if _, isPrefix := f.prefixes[flag.Name]; isPrefix {
			s = "  -" + flag.Name + "..."
		}
		left[i] = s
		if len(s) > maxLeft {
			maxLeft = len(s)
		}
	}

	width := terminalWidth()
	for i, flag := range flags {
		fmt.Fprintf(os.Stdout, "%-*s  ", maxLeft, left[i])
		writeWrapped(flag.Usage, maxLeft+2, width)
	}
}

func writeWrapped(text string, indent, width int) {
	avail := width - indent
	if avail < 20 {
		avail = 20
	}
	line := 0
	for _, word := range strings.Fields(text) {
		if line > 0 && line+1+len(word) > avail {
			fmt.Fprintf(os.Stdout, "\n%s", strings.Repeat(" ", indent))
			line = 0
		} else if line > 0 {
			fmt.Fprint(os.Stdout, " ")
			line++
		}
		fmt.Fprint(os.Stdout, word)
		line += len(word)
	}
	fmt.Fprintln(os.Stdout)
}
