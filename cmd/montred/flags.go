package main

const (
	// LogLevel is the minimum level written to stderr
	LogLevel = "loglevel"

	// LogFormat selects console ("default") or "json" log output
	LogFormat = "log-format"

	LogFormatDefault = "default"
	LogFormatJSON    = "json"

	// Op selects which sweep "verify" runs
	Op = "op"

	// Lo and Hi bound the half-open input range of a sweep
	Lo = "lo"
	Hi = "hi"

	// Workers is the number of goroutines a sweep uses, 0 for GOMAXPROCS
	Workers = "workers"
)
