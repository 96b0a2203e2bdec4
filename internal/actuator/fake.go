package actuator

import "sync"

// FakeActuator is an in-memory Actuator for tests and for the "fake"
// actuator driver.
type FakeActuator struct {
	mu         sync.Mutex
	on         bool
	onCalls    int
	offCalls   int
	failSwitch error
}

func NewFakeActuator() *FakeActuator {
	return &FakeActuator{}
}

func (f *FakeActuator) SwitchOn() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onCalls++
	if f.failSwitch != nil {
		return f.failSwitch
	}
	f.on = true
	return nil
}

func (f *FakeActuator) SwitchOff() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offCalls++
	if f.failSwitch != nil {
		return f.failSwitch
	}
	f.on = false
	return nil
}

func (f *FakeActuator) IsOn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

// SetFailure makes every subsequent SwitchOn/SwitchOff call fail with
// err; pass nil to clear it.
func (f *FakeActuator) SetFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSwitch = err
}

// OnCalls and OffCalls report how many times each switch was invoked,
// for test assertions.
func (f *FakeActuator) OnCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.onCalls
}

func (f *FakeActuator) OffCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offCalls
}
