// restring - linear-time string matching over line-oriented input
//
// Reads rows from stdin (or files), one per line, applies a single string
// operation to every row, and prints one result per line. Rows are
// processed in parallel with order preserved.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kolkov/restring"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var version = "dev"

const usage = `usage: restring --op OP [options] [file ...]

Operations (--op):
  split        split each row around pattern matches (--pattern, --limit)
  replace      replace every pattern match (--pattern, --replacement)
  extract      extract capture group --group of the first match (--pattern)
  rlike        print true/false: row contains a match (--pattern)
  startswith   print true/false: row starts with literal --pattern
  endswith     print true/false: row ends with literal --pattern
  containsany  print true/false: row contains any of the comma-separated
               literals in --pattern

Options:
  -p, --pattern string      pattern (or literal, for startswith/endswith)
  -r, --replacement string  replacement text for replace (literal)
  -g, --group int           capture group index for extract (default 0)
  -n, --limit int           split limit; <= 0 means unbounded (default -1)
  -j, --workers int         parallel workers (default: number of CPUs)
      --ofs string          output field separator for split (default "\t")
      --config string       YAML config file
      --strict              fail on patterns the linear-time engine cannot
                            express instead of falling back
      --version             print version and exit
  -h, --help                show this help
`

func main() {
	var (
		op          = flag.StringP("op", "o", "", "operation to apply")
		pattern     = flag.StringP("pattern", "p", "", "pattern or literal")
		replacement = flag.StringP("replacement", "r", "", "replacement text")
		group       = flag.IntP("group", "g", 0, "capture group index")
		limit       = flag.IntP("limit", "n", -1, "split limit")
		workers     = flag.IntP("workers", "j", 0, "parallel workers")
		ofs         = flag.String("ofs", "\t", "output field separator")
		configPath  = flag.String("config", "", "YAML config file")
		strict      = flag.Bool("strict", false, "disable fallback engine")
		showVersion = flag.Bool("version", false, "print version")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *showVersion {
		fmt.Printf("restring %s\n", version)
		return
	}
	if *op == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &restring.Config{}
	if *configPath != "" {
		loaded, err := restring.LoadConfig(*configPath)
		if err != nil {
			errorExitf("%v", err)
		}
		cfg = loaded
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *strict {
		cfg.DisableFallback = true
	}

	rows, err := readRows(flag.Args())
	if err != nil {
		errorExitf("%v", err)
	}

	ops := restring.NewOps(cfg)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := run(ops, out, *op, rows, *pattern, *replacement, *group, *limit, *ofs); err != nil {
		var rowErrs *restring.RowErrors
		if errors.As(err, &rowErrs) {
			// Row failures are isolated: results already printed,
			// report the failures and exit nonzero.
			fmt.Fprintf(os.Stderr, "restring: %v\n", rowErrs)
			os.Exit(1)
		}
		errorExitf("%v", err)
	}
}

func run(ops *restring.Ops, out io.Writer, op string, rows []string, pattern, replacement string, group, limit int, ofs string) error {
	switch op {
	case restring.OpSplit:
		parts, err := ops.SplitCol(rows, pattern, limit)
		for _, p := range parts {
			fmt.Fprintln(out, strings.Join(p, ofs))
		}
		return err
	case restring.OpRegexpReplace, "replace":
		res, err := ops.ReplaceAllCol(rows, restring.Lit(pattern), restring.Lit(replacement))
		writeStrings(out, res)
		return err
	case restring.OpRegexpExtract, "extract":
		res, err := ops.ExtractCol(rows, pattern, group)
		writeStrings(out, res)
		return err
	case restring.OpRLike:
		res, err := ops.MatchCol(rows, pattern)
		writeBools(out, res)
		return err
	case restring.OpStartsWith:
		res, err := ops.HasPrefixCol(rows, restring.Lit(pattern))
		writeBools(out, res)
		return err
	case restring.OpEndsWith:
		res, err := ops.HasSuffixCol(rows, restring.Lit(pattern))
		writeBools(out, res)
		return err
	case restring.OpContainsAny, "containsany":
		set, err := restring.CompileLiterals(strings.Split(pattern, ","))
		if err != nil {
			return err
		}
		writeBools(out, ops.ContainsAnyCol(rows, set))
		return nil
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func readRows(files []string) ([]string, error) {
	var rows []string
	read := func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			rows = append(rows, scanner.Text())
		}
		return scanner.Err()
	}

	if len(files) == 0 {
		if err := read(os.Stdin); err != nil {
			return nil, err
		}
		return rows, nil
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		err = read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return rows, nil
}

func writeStrings(out io.Writer, res []string) {
	for _, s := range res {
		fmt.Fprintln(out, s)
	}
}

func writeBools(out io.Writer, res []bool) {
	for _, b := range res {
		fmt.Fprintln(out, strconv.FormatBool(b))
	}
}

func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "restring: "+format+"\n", args...)
	os.Exit(1)
}
