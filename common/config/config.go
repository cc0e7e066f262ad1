package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ezlinkai/console/common/env"
	"github.com/google/uuid"
)

var SystemName = "EZLINK AI"
var ServerAddress = "http://localhost:3000"
var Footer = ""
var Logo = ""
var TopUpLink = ""

// ServiceName and InstanceId tag every structured log line.
var ServiceName = env.String("SERVICE_NAME", "console")
var InstanceId = env.String("INSTANCE_ID", uuid.New().String()[:8])

// QuotaPerUnit converts between internal quota units and display currency.
var QuotaPerUnit = env.Float64("QUOTA_PER_UNIT", 500*1000.0) // $0.002 / 1K tokens
var DisplayInCurrencyEnabled = true
var DisplayTokenStatEnabled = true

// BaseCurrency is the ledger currency top-up quotes convert from.
var BaseCurrency = env.String("BASE_CURRENCY", "USD")

var OptionMap map[string]string
var OptionMapRWMutex sync.RWMutex

var ItemsPerPage = 10
var MaxRecentItems = 100

var StripePaymentEnabled = false
var StripeCallbackUrl = ""
var StripePrivateKey = ""
var StripePublicKey = ""
var StripeEndpointSecret = ""
var StripeFixedFee = env.Float64("STRIPE_FIXED_FEE", 0)
var StripePercentFee = env.Float64("STRIPE_PERCENT_FEE", 0.029)
var StripeCurrency = env.String("STRIPE_CURRENCY", "USD")

var DebugEnabled = strings.ToLower(os.Getenv("DEBUG")) == "true"
var DebugSQLEnabled = strings.ToLower(os.Getenv("DEBUG_SQL")) == "true"
var MemoryCacheEnabled = strings.ToLower(os.Getenv("MEMORY_CACHE_ENABLED")) == "true"

var LogConsumeEnabled = true

var IsMasterNode = os.Getenv("NODE_TYPE") != "slave"

var SyncFrequency = env.Int("SYNC_FREQUENCY", 10*60) // unit is second

var BatchUpdateEnabled = false
var BatchUpdateInterval = env.Int("BATCH_UPDATE_INTERVAL", 5)

var RateLimitKeyExpirationDuration = 20 * time.Minute
