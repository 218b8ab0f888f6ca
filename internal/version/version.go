package version

// Version is the current service version
const Version = "1.0.0"
