package index

// NewClientWithClient exposes the test constructor to external test packages.
var NewClientWithClient = newClientWithClient
