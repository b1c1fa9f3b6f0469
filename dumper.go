package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	// skipLines leaves program lines out of the dump
	skipLines bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  prog: %v\n", dump.vm.prog)
	fmt.Fprintf(dump.out, "  running: %v\n", dump.vm.running)
	if len(dump.vm.queue) > 0 {
		fmt.Fprintf(dump.out, "  queued: %v\n", len(dump.vm.queue))
	}
	if dump.vm.text != "" {
		fmt.Fprintf(dump.out, "  text: %q\n", dump.vm.text)
	}
	if len(dump.vm.labels) > 0 {
		labels := sortedKeys(dump.vm.labels)
		for i, label := range labels {
			labels[i] = fmt.Sprintf("%v@%v", label, dump.vm.labels[label])
		}
		fmt.Fprintf(dump.out, "  labels: %v\n", strings.Join(labels, " "))
	}
	if len(dump.vm.args) > 0 {
		fmt.Fprintf(dump.out, "  args: %q\n", dump.vm.args)
	}

	if !dump.skipLines {
		dump.dumpLines()
	}
	dump.dumpStacks()
	dump.dumpObject()
	dump.dumpTapes()
	dump.dumpListeners()
}

func (dump vmDumper) dumpLines() {
	if len(dump.vm.lines) == 0 {
		return
	}
	width := len(fmt.Sprint(len(dump.vm.lines) - 1))

	fmt.Fprintf(dump.out, "# Lines\n")
	for i, line := range dump.vm.lines {
		mark := " "
		if i == dump.vm.prog {
			mark = ">"
		}
		fmt.Fprintf(dump.out, " %v %*v %v\n", mark, width, i, line)
	}
}

func (dump vmDumper) dumpStacks() {
	if len(dump.vm.stacks) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Stacks\n")
	for _, name := range sortedKeys(dump.vm.stacks) {
		fmt.Fprintf(dump.out, "  %v: %v\n", name, dumpValues(dump.vm.stacks[name].Values()))
	}
}

func (dump vmDumper) dumpObject() {
	if len(dump.vm.object) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Object\n")
	for _, key := range sortedKeys(dump.vm.object) {
		fmt.Fprintf(dump.out, "  %v: %v\n", key, logValue{dump.vm.object[key]})
	}
}

func (dump vmDumper) dumpTapes() {
	if len(dump.vm.tapes) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Tapes\n")
	for _, name := range sortedKeys(dump.vm.tapes) {
		tp := dump.vm.tapes[name]
		fmt.Fprintf(dump.out, "  %v: size=%v min=%v max=%v default=%v pointer=%v\n", name,
			formatNumber(tp.Size), formatNumber(tp.Min), formatNumber(tp.Max),
			formatNumber(tp.Default), formatNumber(tp.Pointer))

		var buf strings.Builder
		var last int
		tp.Cells(func(addr int, val float64) {
			if buf.Len() == 0 || addr != last+1 {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				fmt.Fprintf(&buf, "    @%v", addr)
			}
			buf.WriteString(" ")
			buf.WriteString(formatNumber(val))
			last = addr
		})
		if buf.Len() > 0 {
			buf.WriteString("\n")
			io.WriteString(dump.out, buf.String())
		}
	}
}

func (dump vmDumper) dumpListeners() {
	if len(dump.vm.events) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Listeners\n")
	for _, event := range sortedKeys(dump.vm.events) {
		listeners := dump.vm.events[event]
		if len(listeners) == 0 {
			continue
		}
		parts := make([]string, len(listeners))
		for i, ex := range listeners {
			parts[i] = fmt.Sprintf("%v(%v)", ex.Kind(), toString(ex))
		}
		fmt.Fprintf(dump.out, "  %v: %v\n", event, strings.Join(parts, " "))
	}
}

func dumpValues(vals []interface{}) string {
	parts := make([]string, len(vals))
	for i, val := range vals {
		parts[i] = logValue{val}.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
