// Package progress shows start/succeed/fail status for long steps.
// It is cosmetic: nothing reads its state back.
package progress

// Sink receives status updates for one step at a time.
type Sink interface {
	Start(text string)
	Succeed(text string)
	Fail(text string)
	Stop()
}

// Nop discards all updates.
type Nop struct{}

func (Nop) Start(string)   {}
func (Nop) Succeed(string) {}
func (Nop) Fail(string)    {}
func (Nop) Stop()          {}
