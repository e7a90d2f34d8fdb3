// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command derive is Stage B of the rearranged-sequence-clumps tool: it
// reconstructs derived chromosomes from the summary paragraphs emitted by
// the clump command (spec §4.9).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/kortschak/clumps/internal/derive"
	"github.com/kortschak/clumps/internal/ioutil"
)

func main() {
	// A SIGPIPE from a downstream consumer (e.g. a truncated pipeline)
	// should kill this process silently rather than be delivered to a Go
	// signal handler (spec §5).
	signal.Reset(syscall.SIGPIPE)

	log.SetFlags(0)
	log.SetPrefix("derive: ")

	all := flag.Bool("all", false, "enumerate every maximum matching instead of the greedy one")
	groups := flag.String("groups", "", "comma-separated list of group ids to derive (default: all)")
	maxLen := flag.Int("maxlen", 1000000, "maximum segment length before stub-splitting, and the proximity-grouping radius")
	verbose := flag.Bool("verbose", false, "log progress to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: derive [options] rearrangementsFile")
		os.Exit(2)
	}

	opts := derive.Options{All: *all, MaxLen: *maxLen}
	if *groups != "" {
		filter, err := parseGroups(*groups)
		if err != nil {
			log.Fatal(err)
		}
		opts.Groups = filter
	}

	in, err := ioutil.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	rearrs, err := derive.Parse(in)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("parsed %d rearrangements", len(rearrs))
	}

	result := derive.Run(rearrs, opts)
	if !*all {
		for _, chrom := range result.Ambiguous {
			log.Printf("warning: %s has more than one maximum matching; using the greedy pairing", chrom)
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for m, groups := range result.Matchings {
		for g, group := range groups {
			if len(result.Matchings) == 1 {
				derive.WritePartGroup(w, g+1, group)
				continue
			}
			derive.WritePartGroupLabeled(w, fmt.Sprintf("%d-%d", m+1, g+1), group)
		}
	}
}

func parseGroups(s string) (map[int]bool, error) {
	out := make(map[int]bool)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid --groups id %q: %w", tok, err)
		}
		out[n] = true
	}
	return out, nil
}
