// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package smoketest

import (
	"fmt"
	"regexp"
)

// RunFunc is the body of a scenario. Returning nil means the scenario passed, returning Skip(reason)
// skips it, and any other error fails it.
type RunFunc func(sc *ScenarioContext) error

type Scenario struct {
	Name string
	Run  RunFunc
}

// Group is a named, ordered set of scenarios that share a storage target.
type Group struct {
	Name      string
	Scenarios []Scenario
}

// ScenarioID is the identifier the --run filter matches against.
func ScenarioID(group, scenario string) string {
	return group + "/" + scenario
}

// Registry holds the groups in registration order, which is also the order they run in.
type Registry struct {
	groups []Group
	names  map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a group. Registration mistakes are programming errors, so they panic.
func (r *Registry) Register(name string, scenarios ...Scenario) {
	if name == "" {
		panic("scenario group registered without a name")
	}
	if _, exists := r.names[name]; exists {
		panic(fmt.Sprintf("scenario group %q registered twice", name))
	}

	seen := make(map[string]struct{}, len(scenarios))
	for _, s := range scenarios {
		if s.Name == "" || s.Run == nil {
			panic(fmt.Sprintf("scenario group %q has a scenario without a name or a body", name))
		}
		if _, dup := seen[s.Name]; dup {
			panic(fmt.Sprintf("scenario %q registered twice in group %q", s.Name, name))
		}
		seen[s.Name] = struct{}{}
	}

	r.names[name] = struct{}{}
	r.groups = append(r.groups, Group{Name: name, Scenarios: append([]Scenario(nil), scenarios...)})
}

// Groups returns a copy of the registered groups in registration order.
func (r *Registry) Groups() []Group {
	return append([]Group(nil), r.groups...)
}

func (r *Registry) Len() int {
	return len(r.groups)
}

// Filter keeps the scenarios whose ID matches re. Groups left without scenarios are dropped.
// A nil pattern keeps everything.
func (r *Registry) Filter(re *regexp.Regexp) []Group {
	if re == nil {
		return r.Groups()
	}

	var out []Group
	for _, g := range r.groups {
		kept := Group{Name: g.Name}
		for _, s := range g.Scenarios {
			if re.MatchString(ScenarioID(g.Name, s.Name)) {
				kept.Scenarios = append(kept.Scenarios, s)
			}
		}
		if len(kept.Scenarios) > 0 {
			out = append(out, kept)
		}
	}
	return out
}
