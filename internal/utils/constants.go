package utils

// ApplicationName is the binary name, also excluded from every scan.
const ApplicationName = "pathstamp"

// EnvironmentPrefix prefixes environment variables that override flags.
const EnvironmentPrefix = "PATHSTAMP"

// ForwardSlash is the canonical separator used in every recorded path.
const ForwardSlash = "/"
