package log

// GetProviderForTest returns the installed provider without replacing it.
func GetProviderForTest() LoggerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}
