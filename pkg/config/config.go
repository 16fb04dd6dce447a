package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB              string  // connection string for the database
	WaitForServices string  // duration to wait for other services to be ready
	LogLevel        string  // sets the log level (zap log level values)
	SQLLogLevel     string  // sets the log level for sql subsystem
	LogFormat       string  // text vs json
	LogFilter       string  // zapfilter rules, e.g. "*:* -debug:store*"
	Store           string  // store backend (file, badger, redis, sqlite, postgres, nats)
	DataDir         string  // directory of the file store
	BundledDir      string  // directory with default records shipped with the track data
	BadgerPath      string  // directory of the badger database
	RedisAddr       string  // host:port of redis
	RedisPassword   string  // password for redis
	SQLitePath      string  // path of the sqlite database file
	NatsURL         string  // URL of the nats server
	NatsBucket      string  // name of the jetstream key-value bucket
	CacheExpiration string  // duration record lookups are cached (0 disables)
	SampleInterval  float64 // seconds between two recorded samples
)
