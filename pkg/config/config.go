package config

import (
	"time"
)

// DB configures the SQL ledger store and the lending generator target.
type DB struct {
	Source     string `envconfig:"SOURCE" default:"dynamodb"` // dynamodb, postgres or sqlite
	Url        string `envconfig:"URL"`
	LendingUrl string `envconfig:"LENDING_URL"`
	MaxConns   int    `envconfig:"MAX_CONNS" default:"25"`
}

// Dynamo names the DynamoDB tables shared by the apps and handlers.
type Dynamo struct {
	AccountsTable     string `envconfig:"ACCOUNTS_TABLE" default:"accounts"`
	TransactionsTable string `envconfig:"TRANSACTIONS_TABLE" default:"deposits_transactions"`
	VotesTable        string `envconfig:"VOTES_TABLE" default:"total_votes"`
	FraudTable        string `envconfig:"FRAUD_TABLE" default:"Fraud"`
	AnalyticsTable    string `envconfig:"ANALYTICS_TABLE" default:"analytics"`
	BankDataTable     string `envconfig:"BANK_DATA_TABLE" default:"bank-data"`
	LoanTable         string `envconfig:"LOAN_TABLE" default:"loan_application"`
	CheckinTable      string `envconfig:"CHECKIN_TABLE" default:"checkinData"`
	StockTable        string `envconfig:"STOCK_TABLE" default:"stock_transactions_table"`
	AppTable          string `envconfig:"APP_TABLE"`
	PlansTable        string `envconfig:"PLANS_TABLE" default:"bnpl-plans"`
	UploadTable       string `envconfig:"UPLOAD_TABLE" default:"transactions"`
}

type AWS struct {
	Region   string `envconfig:"REGION" default:"us-east-1"`
	Endpoint string `envconfig:"ENDPOINT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"finlabs:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"` // memory, redis or kafka
	Stream string `envconfig:"STREAM" default:"finlabs:events"`
	Group  string `envconfig:"GROUP" default:"finlabs"`
}

type Kafka struct {
	Brokers     string `envconfig:"BROKERS" default:"localhost:9092"`
	TopicPrefix string `envconfig:"TOPIC_PREFIX" default:"finlabs.events"`
	StockTopic  string `envconfig:"STOCK_TOPIC" default:"stock_transactions"`
	StockGroup  string `envconfig:"STOCK_GROUP" default:"my-group"`
}

// Guard configures replay protection for stream consumers.
type Guard struct {
	Driver string        `envconfig:"DRIVER" default:"memory"` // memory or redis
	TTL    time.Duration `envconfig:"TTL" default:"24h"`
}

type Buckets struct {
	Input       string `envconfig:"INPUT"`
	Output      string `envconfig:"OUTPUT"`
	Media       string `envconfig:"IN"`
	Transcripts string `envconfig:"OUT"`
	Upload      string `envconfig:"UPLOAD"`
	UploadKey   string `envconfig:"UPLOAD_KEY" default:"transactions.json"`
}

type Vault struct {
	IngressBucket   string        `envconfig:"INGRESS_BUCKET"`
	AnalyticsBucket string        `envconfig:"ANALYTICS_BUCKET"`
	VaultBucket     string        `envconfig:"VAULT_BUCKET"`
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`
}

type Fraud struct {
	EndpointName string `envconfig:"ENDPOINT_NAME"`
	StreamName   string `envconfig:"STREAM_NAME" default:"TransactionsStream"`
	MaxRecords   int    `envconfig:"MAX_RECORDS" default:"1000"`
}

type Loan struct {
	StateMachineArn string `envconfig:"STATE_MACHINE_ARN"`
	Language        string `envconfig:"LANGUAGE" default:"en"`
}

type Lending struct {
	QueueURL string `envconfig:"QUEUE_URL"`
	CoderID  string `envconfig:"CODER_ID" default:"123"`
	SpotID   string `envconfig:"SPOT_ID" default:"321"`
}

type Options struct {
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"10"`
	Steps     int `envconfig:"STEPS" default:"200"`
}

type Search struct {
	Endpoint string `envconfig:"ENDPOINT"`
	Index    string `envconfig:"INDEX" default:"searchbot"`
	Service  string `envconfig:"SERVICE" default:"es"`
}

type Credit struct {
	Endpoint string  `envconfig:"ENDPOINT"`
	Service  string  `envconfig:"SERVICE" default:"execute-api"`
	MinScore float64 `envconfig:"MIN_SCORE" default:"500"`
}

type Transcribe struct {
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"10s"`
	MaxPolls     int           `envconfig:"MAX_POLLS" default:"60"`
}

type Warehouse struct {
	WorkflowName        string        `envconfig:"WORKFLOW_NAME"`
	CrawlerName         string        `envconfig:"CRAWLER_NAME"`
	CrawlerPollInterval time.Duration `envconfig:"CRAWLER_POLL_INTERVAL" default:"30s"`
}

type Generators struct {
	Rows          int    `envconfig:"ROWS" default:"1000"`
	StockStream   string `envconfig:"STOCK_STREAM" default:"stock-stream"`
	TickersFile   string `envconfig:"TICKERS_FILE" default:"tickers.csv"`
	FirehoseBatch int    `envconfig:"FIREHOSE_BATCH" default:"500"`
	Seed          int64  `envconfig:"SEED" default:"0"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finlabs]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"0.0.0.0"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DB"`
	Dynamo     *Dynamo     `envconfig:"DYNAMO"`
	AWS        *AWS        `envconfig:"AWS"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	EventBus   *EventBus   `envconfig:"EVENT_BUS"`
	Kafka      *Kafka      `envconfig:"KAFKA"`
	Guard      *Guard      `envconfig:"GUARD"`
	Buckets    *Buckets    `envconfig:"BUCKET"`
	Vault      *Vault      `envconfig:"VAULT"`
	Fraud      *Fraud      `envconfig:"FRAUD"`
	Loan       *Loan       `envconfig:"LOAN"`
	Lending    *Lending    `envconfig:"LENDING"`
	Options    *Options    `envconfig:"OPTIONS"`
	Search     *Search     `envconfig:"SEARCH"`
	Credit     *Credit     `envconfig:"CREDIT"`
	Transcribe *Transcribe `envconfig:"TRANSCRIBE"`
	Warehouse  *Warehouse  `envconfig:"WAREHOUSE"`
	Generators *Generators `envconfig:"GEN"`
}
