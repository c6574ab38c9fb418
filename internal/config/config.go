package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Seeded admin account (32-char lowercase hex).
	AdminID string

	// Loan origination: "peer" or "pool".
	OriginationMode string
	BaseLTVBps      int64
	DefaultRateBps  int64

	// Staking collection and reward accrual caps.
	StakeNFTContract string
	RewardToken      string
	BaseRewardRate   decimal.Decimal
	TimeWeightFactor int64
	MaxDailyReward   decimal.Decimal
	MaxRewardCap     decimal.Decimal

	// Internal ledger accounts.
	EscrowAccount   string
	LendingPool     string
	StakeRewardPool string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func getdec(k, d string) decimal.Decimal {
	if v := os.Getenv(k); v != "" {
		if n, err := decimal.NewFromString(v); err == nil {
			return n
		}
	}
	n, _ := decimal.NewFromString(d)
	return n
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "nftlending"),
		MySQLUser: getenv("MYSQL_USER", "nftlending"),
		MySQLPass: getenv("MYSQL_PASS", "nftlending"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		AdminID: getenv("ADMIN_ID", ""),

		OriginationMode: getenv("ORIGINATION_MODE", "peer"),
		BaseLTVBps:      getint("BASE_LTV_BPS", 8000),
		DefaultRateBps:  getint("DEFAULT_RATE_BPS", 800),

		StakeNFTContract: getenv("STAKE_NFT_CONTRACT", "genesis"),
		RewardToken:      getenv("REWARD_TOKEN", "rwd"),
		BaseRewardRate:   getdec("BASE_REWARD_RATE", "0.0001"),
		TimeWeightFactor: getint("TIME_WEIGHT_FACTOR", 1),
		MaxDailyReward:   getdec("MAX_DAILY_REWARD", "100"),
		MaxRewardCap:     getdec("MAX_REWARD_CAP", "10000"),

		EscrowAccount:   getenv("ESCROW_ACCOUNT", "sys:loan-escrow"),
		LendingPool:     getenv("LENDING_POOL_ACCOUNT", "sys:lending-pool"),
		StakeRewardPool: getenv("STAKE_REWARD_POOL_ACCOUNT", "sys:stake-reward-pool"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.AdminID == "" {
		return errors.New("missing ADMIN_ID")
	}
	if c.OriginationMode != "peer" && c.OriginationMode != "pool" {
		return fmt.Errorf("invalid ORIGINATION_MODE %q: want peer or pool", c.OriginationMode)
	}
	if c.BaseLTVBps <= 0 || c.BaseLTVBps > 10000 {
		return fmt.Errorf("invalid BASE_LTV_BPS %d", c.BaseLTVBps)
	}
	if c.DefaultRateBps < 0 || c.DefaultRateBps > 10000 {
		return fmt.Errorf("invalid DEFAULT_RATE_BPS %d", c.DefaultRateBps)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
