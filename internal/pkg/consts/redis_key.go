package consts

const (
	SessionRevokedKey = "session:revoked:"
	SessionChangeKey  = "session:change:"
)
