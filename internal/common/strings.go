package common

// UnknownStr is the String form of an unrecognized enum value.
const UnknownStr = "unknown"
