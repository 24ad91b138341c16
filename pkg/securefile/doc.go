// Package securefile provides trusted-path file access with defense-in-depth validation.
//
// Before a file is opened, every directory from the filesystem root down to the
// target must be owned by the invoking user (or root) and must not be writable
// by group or others. Symbolic links on that path are followed and their targets
// held to the same standard. This addresses the CWE-22 path traversal class and
// the "trusted directory" TOCTOU pattern described in CERT-C FIO15-C.
//
// # Secure Open Flow
//
// OpenSecure runs these stages in order and stops at the first failure:
//
// 1. **Mode parsing**: fopen-style mode string (r/w/a, b, +, x)
// 2. **Canonicalization**: absolute, symlink-free path (containing directory for create modes)
// 3. **Extension allow-list**: ExtensionFilter match for must-exist opens
// 4. **Pre-open attributes**: stat-by-name comparison against caller expectations
// 5. **Directory trust**: IsDirectorySecure over the full ancestor chain
// 6. **Open**: O_NOFOLLOW on the final component where the platform supports it
// 7. **Identity fingerprint**: fstat-by-handle comparison closes the stat/open race
// 8. **Post-open attributes**: fstat-by-handle re-verification
//
// Every stage failure still yields a populated *SecureFile whose Code and Detail
// describe the violation; callers never receive nil.
//
// # Example: Reading a file only if it has not been swapped
//
//	sf := securefile.OpenSecure(path, "rb", nil)
//	if !sf.IsValid() {
//	    return fmt.Errorf("open refused: %s", sf.Detail())
//	}
//	defer sf.Close()
//	captured := sf.Identity()
//
//	// ... later, re-open and insist on the same physical file:
//	sf2 := securefile.OpenSecure(path, "rb", &securefile.OpenOptions{
//	    ExpectedIdentity: &captured,
//	})
//
// The directory check consults SUDO_UID (through a tamper-checked environment)
// so root acting under sudo does not spuriously reject the invoking user's own
// directories.
package securefile
