// Package wizard implements the four step booking flow used by the
// public site: pick a slot, describe the project, leave contact
// details, review and submit. The step order and guards here are the
// single source of truth for what the intake endpoint will accept.
package wizard

import (
	"fmt"
	"regexp"
	"strings"
)

// Step identifies one screen of the booking flow
type Step string

const (
	StepSchedule Step = "schedule"
	StepProject  Step = "project"
	StepInfo     Step = "info"
	StepReview   Step = "review"
)

// steps lists the flow in order
var steps = []Step{StepSchedule, StepProject, StepInfo, StepReview}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Package describes a purchasable service tier
type Package struct {
	Slug           string
	Title          string
	Price          int64 // cents
	DepositPercent int
}

// DepositAmount returns the deposit in cents, rounded half up
func (p Package) DepositAmount() int64 {
	return (p.Price*int64(p.DepositPercent) + 50) / 100
}

// Draft accumulates the customer's answers across steps
type Draft struct {
	PreferredDate      string
	PreferredTime      string
	Timezone           string
	ProjectDescription string
	ProjectGoals       string
	CurrentWebsite     string
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CompanyName        string
}

// Wizard tracks position in the flow for one draft
type Wizard struct {
	step  int
	Draft Draft
}

// New starts a wizard at the schedule step
func New() *Wizard {
	return &Wizard{}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return steps[w.step]
}

// CanProceed reports whether the current step's answers are complete
// enough to move forward.
func (w *Wizard) CanProceed() bool {
	switch w.Step() {
	case StepSchedule:
		return w.Draft.PreferredDate != "" && w.Draft.PreferredTime != ""
	case StepProject:
		return len(strings.TrimSpace(w.Draft.ProjectDescription)) >= 10
	case StepInfo:
		return len(strings.TrimSpace(w.Draft.CustomerName)) >= 2 &&
			emailPattern.MatchString(w.Draft.CustomerEmail)
	case StepReview:
		return true
	}
	return false
}

// Next advances to the following step. The current step's guard must
// pass, and the review step has no next.
func (w *Wizard) Next() error {
	if w.step == len(steps)-1 {
		return fmt.Errorf("already at the final step")
	}
	if !w.CanProceed() {
		return fmt.Errorf("step %s is incomplete", w.Step())
	}
	w.step++
	return nil
}

// Back returns to the previous step. Answers are kept.
func (w *Wizard) Back() error {
	if w.step == 0 {
		return fmt.Errorf("already at the first step")
	}
	w.step--
	return nil
}
