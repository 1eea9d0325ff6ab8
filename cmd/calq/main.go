package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	calqmath "github.com/zephyrtronium/calqmath"
)

func main() {
	log.SetFlags(0)
	var (
		inname, varExpr string
		prec            int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&varExpr, "var", "", "value to bind the reserved variable x to, as an expression")
	flag.IntVar(&prec, "prec", 64, "precision of calculations in bits")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}

	in := calqmath.NewInterpreter(uint(prec))

	var variable *calqmath.Scalar
	if varExpr != "" {
		v, err := in.InterpretValue(varExpr)
		if err != nil {
			log.Fatalf("binding x: %v", err)
		}
		variable = &v
	}

	var ins []io.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	for _, r := range ins {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			var result calqmath.Scalar
			var err error
			if variable != nil {
				result, err = in.InterpretAt(line, *variable)
			} else {
				result, err = in.InterpretValue(line)
			}
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(result.String())
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return f, nil
}
