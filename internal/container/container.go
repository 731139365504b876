package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/config"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

// Repositories is the data access gateway selected by STORAGE_DRIVER.
type Repositories struct {
	Users   repo.UserRepository
	Polls   repo.PollRepository
	Options repo.PollOptionRepository
	Votes   repo.PollVoteRepository
}

// app-level container to share constructed components across packages.
// The router wires modules from these singletons; optional ones stay nil.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	repos       Repositories
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	rabbitQueue *helpers.RabbitQueue
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetPGPool(p *pgxpool.Pool)             { pgPool = p }
func GetPGPool() *pgxpool.Pool              { return pgPool }
func SetRepositories(r Repositories)        { repos = r }
func GetRepositories() Repositories         { return repos }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetJWT(m *helpers.JWTManager)          { jwtManager = m }
func GetJWT() *helpers.JWTManager           { return jwtManager }
func SetRabbitQueue(q *helpers.RabbitQueue) { rabbitQueue = q }
func GetRabbitQueue() *helpers.RabbitQueue  { return rabbitQueue }
func SetES(c *elasticsearch.Client)         { esClient = c }
func GetES() *elasticsearch.Client          { return esClient }
