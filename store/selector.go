package store

// Selector identifies a user record either by its username (the primary key)
// or by its session key (a secondary lookup). The zero Selector is invalid;
// construct one with ByUsername or BySessionKey.
type Selector struct {
	username   string
	sessionKey string
}

// ByUsername selects the record stored under username.
func ByUsername(username string) Selector {
	return Selector{username: username}
}

// BySessionKey selects records whose sessionkey field matches key.
func BySessionKey(key string) Selector {
	return Selector{sessionKey: key}
}

func (s Selector) valid() bool {
	return (s.username != "") != (s.sessionKey != "")
}
