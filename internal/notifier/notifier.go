// Package notifier informs the user of guard transitions (pause scheduled,
// print paused, print resumed).
package notifier

type Notifier interface {
	Notify(string)
}

type Notifiers []Notifier

func (n Notifiers) Notify(msg string) {
	for _, l := range n {
		l.Notify(msg)
	}
}
