package dom

// MutationRecord describes one change to a child list.
type MutationRecord struct {
	Target  *Element
	Added   []*Element
	Removed []*Element
}

// ObserveOptions selects which mutations an observer receives.
type ObserveOptions struct {
	ChildList bool
	Subtree   bool
}

// Observer receives batches of mutation records for the elements it observes.
type Observer struct {
	callback func([]MutationRecord)
	doc      *Document
	targets  map[*Element]ObserveOptions
	records  []MutationRecord
}

// NewObserver creates an observer that is not observing anything yet.
func NewObserver(callback func([]MutationRecord)) *Observer {
	return &Observer{
		callback: callback,
		targets:  make(map[*Element]ObserveOptions),
	}
}

// Observe starts observing target. Observing the same target again replaces its options.
func (o *Observer) Observe(target *Element, opts ObserveOptions) {
	if o.doc == nil {
		o.doc = target.doc
		o.doc.observers = append(o.doc.observers, o)
	}
	o.targets[target] = opts
}

// Disconnect stops all observation and drops undelivered records.
func (o *Observer) Disconnect() {
	if o.doc != nil {
		o.doc.detach(o)
		o.doc = nil
	}
	clear(o.targets)
	o.records = nil
}

func (o *Observer) takeRecords() []MutationRecord {
	records := o.records
	o.records = nil
	return records
}

func (o *Observer) interested(parent *Element) bool {
	for target, opts := range o.targets {
		if !opts.ChildList {
			continue
		}
		if target == parent || (opts.Subtree && target.Contains(parent)) {
			return true
		}
	}
	return false
}
