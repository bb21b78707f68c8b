// Package analyzer evaluates a cluster.Configuration against the fixed
// catalogue of placement rules described in spec.md §4.1 and streams
// graded Result records to a caller-supplied sink. The analyzer is a
// pure function: no shared mutable state, no I/O, fully reentrant.
package analyzer

import (
	"fmt"

	"github.com/aoindustries/aoserv-cluster/pkg/cluster"
)

// AlertLevel is the totally-ordered severity enum NONE < LOW < MEDIUM <
// HIGH < CRITICAL.
type AlertLevel int

const (
	AlertNone AlertLevel = iota
	AlertLow
	AlertMedium
	AlertHigh
	AlertCritical
)

func (l AlertLevel) String() string {
	switch l {
	case AlertNone:
		return "NONE"
	case AlertLow:
		return "LOW"
	case AlertMedium:
		return "MEDIUM"
	case AlertHigh:
		return "HIGH"
	case AlertCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("AlertLevel(%d)", int(l))
	}
}

// PayloadKind tags the type held by a Payload's active field.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadInt
	PayloadBool
	PayloadProcessorType
	PayloadProcessorArchitecture
)

// Payload is a small tagged union over the rule-specific result types
// named in spec.md §9: {int, bool, processor-type, processor-architecture}.
type Payload struct {
	Kind                   PayloadKind
	IntValue               int
	BoolValue              bool
	ProcessorTypeValue     cluster.ProcessorType
	ProcessorArchitecture  cluster.ProcessorArchitecture
}

func IntPayload(v int) Payload { return Payload{Kind: PayloadInt, IntValue: v} }
func BoolPayload(v bool) Payload { return Payload{Kind: PayloadBool, BoolValue: v} }
func ProcessorTypePayload(v cluster.ProcessorType) Payload {
	return Payload{Kind: PayloadProcessorType, ProcessorTypeValue: v}
}
func ProcessorArchitecturePayload(v cluster.ProcessorArchitecture) Payload {
	return Payload{Kind: PayloadProcessorArchitecture, ProcessorArchitecture: v}
}

// Result is one rule-violation (or clean) finding.
type Result struct {
	// Label is a human label, typically a hostname or resource name.
	Label string
	// Deviation is the observed/expected pair summarized as a signed
	// ratio; negative means overcommit, positive means shortfall toward
	// limit. Exact definition is per-rule.
	Deviation float64
	Level     AlertLevel
	Payload   Payload
}

// Sink receives each Result in evaluation order and returns true to keep
// going, false to stop. Once a Sink returns false, the analyzer must not
// invoke it again for that Analyze call.
type Sink func(Result) bool
