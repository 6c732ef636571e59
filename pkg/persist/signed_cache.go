package persist

// SignedPayload is the on-disk shape of every signature-keyed cache file
// `{ "install_list_signature": [...], "payload": <stage-specific> }`.
type SignedPayload[T any] struct {
	InstallListSignature Signature `json:"install_list_signature"`
	Payload              T         `json:"payload"`
}

// SaveSignedCache writes payload to path tagged with sig. Used for the
// four plan-scoped resolver caches (deps/files/services/sandbox).
func SaveSignedCache[T any](path string, sig Signature, payload T) error {
	return SaveJSON(path, SignedPayload[T]{InstallListSignature: sig, Payload: payload})
}

// LoadSignedCache returns the cached payload only when the file's stored
// signature exactly matches sig. Any mismatch —
// including a missing file or unparsable JSON — is treated as absent;
// callers must not partially trust a stale cache.
func LoadSignedCache[T any](path string, sig Signature) (T, bool) {
	var stored SignedPayload[T]
	ok, err := LoadJSON(path, &stored)
	if err != nil || !ok {
		var zero T
		return zero, false
	}
	if !stored.InstallListSignature.Equal(sig) {
		var zero T
		return zero, false
	}
	return stored.Payload, true
}
