package mochow

// Version is the release version of the SDK, reported in the
// User-Agent header of every request.
const Version = "1.1.2"
