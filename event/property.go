/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package event

// PropertyTarget identifies who a PropertyEvent applies to: either every
// instance of an element kind, or one specific element instance.
// Matching is by a kind-name comparison or an element-identity
// comparison, never by reflection.
type PropertyTarget struct {
	// Kind, when non-empty, matches every element whose registered kind
	// name equals Kind (e.g. "simplex").
	Kind string
	// Instance, when non-zero, matches exactly one element by its
	// generational-table identity.
	Instance Source
}

func TargetKind(kind string) PropertyTarget {
	return PropertyTarget{Kind: kind}
}

func TargetInstance(src Source) PropertyTarget {
	return PropertyTarget{Instance: src}
}

// Matches reports whether this target applies to an element with the
// given kind name and identity.
func (t PropertyTarget) Matches(kind string, id Source) bool {
	if !t.Instance.IsZero() {
		return t.Instance == id
	}
	return t.Kind == kind
}

// Property is one (name, value) configuration pair carried by a PropertyEvent.
type Property struct {
	Name  string
	Value interface{}
}

// PropertyEvent is a pipeline-wide configuration broadcast: an element
// whose kind or identity matches Target stores Properties when the event
// is handed to its HandleUniversalEvent. Elements do not forward the
// event to their peers. Unlike other events, a PropertyEvent may
// be delivered as a universal event at any point in the stream, not just
// in packet order relative to data.
type PropertyEvent struct {
	base
	Target     PropertyTarget
	Properties []Property
}

func (e *PropertyEvent) Kind() string { return "property" }

func NewPropertyEvent(target PropertyTarget, props ...Property) *PropertyEvent {
	return &PropertyEvent{Target: target, Properties: append([]Property{}, props...)}
}

// Get returns the value of the named property and whether it was present.
func (e *PropertyEvent) Get(name string) (interface{}, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
