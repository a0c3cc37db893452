// Package calc implements the closed-form financial calculators behind the
// assistant: investment growth (SIP, lump sum, CAGR, compound interest),
// deposits (FD, RD), loans and mortgages, HRA exemption, FIRE planning, and
// US income tax. Every calculator is a pure function evaluated once per
// input; the registry exposes them uniformly to the chat composer and the
// HTTP API.
package calc

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Request carries calculator inputs: numeric parameters plus string
// options (filing status, state code, city type).
type Request struct {
	Params  map[string]float64 `json:"params"`
	Options map[string]string  `json:"options,omitempty"`
}

// Compute evaluates one calculator against a request.
type Compute func(Request) (map[string]float64, error)

// Info describes one registered calculator.
type Info struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	compute Compute
}

var registry = map[string]Info{}

func register(key, name, summary string, fn Compute) {
	registry[key] = Info{Key: key, Name: name, Summary: summary, compute: fn}
}

// Lookup returns the calculator registered under key.
func Lookup(key string) (Info, bool) {
	info, ok := registry[key]
	return info, ok
}

// All returns every registered calculator sorted by key.
func All() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

// Run evaluates the calculator registered under key.
func Run(key string, req Request) (map[string]float64, error) {
	info, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown calculator %q", key)
	}
	return info.compute(req)
}

func (r Request) param(name string) (float64, error) {
	v, ok := r.Params[name]
	if !ok {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	return v, nil
}

func (r Request) paramDefault(name string, def float64) float64 {
	if v, ok := r.Params[name]; ok {
		return v
	}
	return def
}

func (r Request) option(name, def string) string {
	if v, ok := r.Options[name]; ok && v != "" {
		return v
	}
	return def
}

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as US dollars with grouped thousands.
func FormatCurrency(amount float64) string {
	return usPrinter.Sprintf("$%.2f", amount)
}

// FormatPercent renders a rate given in percent units, e.g. 7.5 -> "7.50%".
func FormatPercent(rate float64) string {
	return usPrinter.Sprintf("%.2f%%", rate)
}
