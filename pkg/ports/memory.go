package ports

// MemoryStatus is the result of an available-memory query.
// Supported is false on platforms where the query is not implemented;
// AvailableBytes is only meaningful when Supported is true.
type MemoryStatus struct {
	Supported      bool
	AvailableBytes uint64
}

// SystemMemory abstracts the platform available-memory query.
type SystemMemory interface {
	// Query reports available system memory. It never fails: platforms
	// without a usable query return Supported=false.
	Query() MemoryStatus
}
