package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/config"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager  *helpers.JWTManager
	flashSigner *helpers.FlashSigner

	emailQueue *helpers.RabbitQueue
	esClient   *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.NewJWTManager(cfg.JWTSessionSecret, cfg.SessionTTL)
}
func SetFlash(s *helpers.FlashSigner) { flashSigner = s }
func GetFlash() *helpers.FlashSigner {
	if flashSigner != nil {
		return flashSigner
	}
	return helpers.NewFlashSigner(cfg.FlashSecret)
}

func SetEmailQueue(q *helpers.RabbitQueue) { emailQueue = q }
func GetEmailQueue() *helpers.RabbitQueue  { return emailQueue }
func SetES(c *elasticsearch.Client)        { esClient = c }
func GetES() *elasticsearch.Client         { return esClient }
