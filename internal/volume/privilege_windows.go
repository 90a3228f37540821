//go:build windows

package volume

import "golang.org/x/sys/windows"

// IsAdministrator reports whether the current process token is a member
// of the built-in Administrators group. Reading the raw USN journal
// requires elevation; callers should check this before opening any
// volume and fail fast otherwise.
func IsAdministrator() bool {
	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	token := windows.Token(0)
	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}
