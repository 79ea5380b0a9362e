package hyperlimit

// AddToWhitelist adds clientID to the allow list. Allow-listed clients
// bypass all bucket work on TryRequestClient, unless also deny-listed.
func (r *Registry) AddToWhitelist(clientID string) { r.whitelist.add(clientID) }

// RemoveFromWhitelist removes clientID from the allow list.
func (r *Registry) RemoveFromWhitelist(clientID string) { r.whitelist.remove(clientID) }

// IsWhitelisted reports whether clientID is on the allow list.
func (r *Registry) IsWhitelisted(clientID string) bool { return r.whitelist.contains(clientID) }

// AddToBlacklist adds clientID to the deny list. Deny-listed clients are
// always refused by TryRequestClient, taking precedence over the allow
// list.
func (r *Registry) AddToBlacklist(clientID string) { r.blacklist.add(clientID) }

// RemoveFromBlacklist removes clientID from the deny list.
func (r *Registry) RemoveFromBlacklist(clientID string) { r.blacklist.remove(clientID) }

// IsBlacklisted reports whether clientID is on the deny list.
func (r *Registry) IsBlacklisted(clientID string) bool { return r.blacklist.contains(clientID) }

// GetStats returns a snapshot of the registry's request counters and
// their derived ratios.
func (r *Registry) GetStats() Stats { return r.stats.snapshot() }

// ResetStats zeroes all four request counters.
func (r *Registry) ResetStats() { r.stats.reset() }
