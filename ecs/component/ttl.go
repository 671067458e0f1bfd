package component

// TTL destroys an entity once Seconds of physics time have elapsed.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
