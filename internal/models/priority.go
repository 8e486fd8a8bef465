package models

import (
	"fmt"
	"sort"
	"strings"
)

// PriorityClass tags a ticket for queue ordering and display visibility.
type PriorityClass string

const (
	ClassStandard PriorityClass = "STANDARD"
	ClassPriority PriorityClass = "PRIORITY"
	ClassExempt   PriorityClass = "EXEMPT"
)

// Audience is a consumer of queue listings.
type Audience int

const (
	AudienceInternal Audience = iota
	AudiencePublic
)

func (a Audience) String() string {
	if a == AudiencePublic {
		return "public"
	}
	return "internal"
}

// ParseAudience maps "public" to AudiencePublic and anything else to
// AudienceInternal.
func ParseAudience(s string) Audience {
	if strings.EqualFold(strings.TrimSpace(s), "public") {
		return AudiencePublic
	}
	return AudienceInternal
}

type classSpec struct {
	rank   int
	hidden map[Audience]bool
}

// Lower rank is served first. Classes sharing a rank fall back to FIFO.
var classes = map[PriorityClass]classSpec{
	ClassPriority: {rank: 0},
	ClassStandard: {rank: 1},
	ClassExempt:   {rank: 1, hidden: map[Audience]bool{AudiencePublic: true}},
}

// Classes returns the known classes ordered by rank, then name.
func Classes() []PriorityClass {
	out := make([]PriorityClass, 0, len(classes))
	for c := range classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := classes[out[i]].rank, classes[out[j]].rank
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// ParseClass accepts a class name in any case.
func ParseClass(s string) (PriorityClass, bool) {
	c := PriorityClass(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := classes[c]
	return c, ok
}

func (c PriorityClass) Valid() bool {
	_, ok := classes[c]
	return ok
}

// Rank orders classes for selection; unknown classes sort last.
func (c PriorityClass) Rank() int {
	if spec, ok := classes[c]; ok {
		return spec.rank
	}
	return maxRank() + 1
}

func (c PriorityClass) VisibleTo(a Audience) bool {
	spec, ok := classes[c]
	return ok && !spec.hidden[a]
}

// RankOrderSQL renders a CASE expression ranking column by class. Class
// names come from the fixed registry, so they are inlined as literals.
func RankOrderSQL(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for _, c := range Classes() {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", c, classes[c].rank)
	}
	fmt.Fprintf(&b, " ELSE %d END", maxRank()+1)
	return b.String()
}

func maxRank() int {
	m := 0
	for _, spec := range classes {
		if spec.rank > m {
			m = spec.rank
		}
	}
	return m
}
