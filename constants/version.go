package constants

// Version is the current version of sigverify.
const Version = "1.0.0"
