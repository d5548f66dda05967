package models

import "strconv"

// OutputClass represents one detection label.
type OutputClass struct {
	// The integer index returned by the model.
	Index int
	// The human-readable label.
	Name string
}

// OutputClassSet is the ordered label list of one trained model.
type OutputClassSet struct {
	Classes []OutputClass
}

// NewOutputClassSet builds a class set from label names in model index order.
func NewOutputClassSet(names []string) *OutputClassSet {
	set := &OutputClassSet{Classes: make([]OutputClass, 0, len(names))}
	for i, name := range names {
		set.Classes = append(set.Classes, OutputClass{Index: i, Name: name})
	}
	return set
}

// Name returns the label for a class index, falling back to "class_<idx>" for
// indices the label list does not cover.
func (s *OutputClassSet) Name(idx int) string {
	if s != nil && idx >= 0 && idx < len(s.Classes) && s.Classes[idx].Name != "" {
		return s.Classes[idx].Name
	}
	return "class_" + strconv.Itoa(idx)
}

// Len returns the number of labelled classes.
func (s *OutputClassSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Classes)
}
