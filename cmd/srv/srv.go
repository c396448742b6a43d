package main

import (
	"context"
	"net/http"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/quinty-io/backend/config"
	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/client"
	"github.com/quinty-io/backend/internal/domain"
	"github.com/quinty-io/backend/internal/domain/indexer"
	"github.com/quinty-io/backend/internal/domain/search"
	"github.com/quinty-io/backend/internal/domain/statistic"
	"github.com/quinty-io/backend/internal/entity"
	"github.com/quinty-io/backend/internal/repository"
	"github.com/quinty-io/backend/pkg/api/pinata"
	"github.com/quinty-io/backend/pkg/api/twitter"
	"github.com/quinty-io/backend/pkg/kafka"
	"github.com/quinty-io/backend/pkg/logger"
	"github.com/quinty-io/backend/pkg/pubsub"
	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/storage"
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/quinty-io/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	server *http.Server
	router *router.Router

	userRepo        repository.UserRepository
	oauth2Repo      repository.OAuth2Repository
	bountyRepo      repository.BountyRepository
	questRepo       repository.QuestRepository
	disputeRepo     repository.DisputeRepository
	achievementRepo repository.AchievementRepository
	txRepo          repository.BlockChainTransactionRepository

	ethClient         chain.Caller
	quintyGateway     chain.QuintyGateway
	questGateway      chain.QuestGateway
	disputeGateway    chain.DisputeGateway
	reputationGateway chain.ReputationGateway

	redisClient     xredis.Client
	publisher       pubsub.Publisher
	fileStorage     storage.Storage
	ipfsEndpoint    pinata.IEndpoint
	twitterEndpoint twitter.IEndpoint

	searchCaller   search.Caller
	fetcher        *indexer.EntityFetcher
	aggregator     *indexer.Aggregator
	watcher        *indexer.Watcher
	receiptTracker *indexer.ReceiptTracker
	leaderboard    statistic.Leaderboard
	resolver       *client.UsernameResolver

	authDomain       domain.AuthDomain
	userDomain       domain.UserDomain
	bountyDomain     domain.BountyDomain
	questDomain      domain.QuestDomain
	disputeDomain    domain.DisputeDomain
	historyDomain    domain.HistoryDomain
	blockchainDomain domain.BlockchainDomain
	fileDomain       domain.FileDomain
	statisticDomain  statistic.Domain
	wsDomain         domain.WsDomain
}

func (s *srv) loadConfig() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.toml"
	}

	var configs config.Configs
	if _, err := toml.DecodeFile(configFile, &configs); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(
		mysql.Open(xcontext.Configs(s.ctx).Database.ConnectionString()),
		&gorm.Config{},
	)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadEndpoint() {
	cfg := xcontext.Configs(s.ctx)
	s.ipfsEndpoint = pinata.New(cfg.IPFS)
	s.twitterEndpoint = twitter.New(cfg.Auth.Twitter)
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(uuid.NewString(), []string{xcontext.Configs(s.ctx).Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.oauth2Repo = repository.NewOAuth2Repository()
	s.bountyRepo = repository.NewBountyRepository()
	s.questRepo = repository.NewQuestRepository()
	s.disputeRepo = repository.NewDisputeRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.txRepo = repository.NewBlockChainTransactionRepository()
}

func (s *srv) loadChain() {
	cfg := xcontext.Configs(s.ctx).Blockchain
	s.ethClient = chain.NewEthClient(cfg.Chain, cfg.ChainID, cfg.Rpcs, cfg.UseExternalRpcs)
	go s.ethClient.Start(s.ctx)

	var err error
	if s.quintyGateway, err = chain.NewQuintyGateway(s.ethClient, cfg.Contracts.Quinty); err != nil {
		panic(err)
	}

	if s.questGateway, err = chain.NewQuestGateway(s.ethClient, cfg.Contracts.QuestAirdrop); err != nil {
		panic(err)
	}

	if s.disputeGateway, err = chain.NewDisputeGateway(s.ethClient, cfg.Contracts.DisputeResolver); err != nil {
		panic(err)
	}

	if s.reputationGateway, err = chain.NewReputationGateway(s.ethClient, cfg.Contracts.ReputationBadge); err != nil {
		panic(err)
	}
}

func (s *srv) loadSearchCaller() {
	s.searchCaller = search.NewBleveIndex(s.ctx)
}

// loadIndexer builds the read-model pipeline. The search caller stays nil in
// processes which did not load it, the aggregator skips indexing then.
func (s *srv) loadIndexer() {
	s.fetcher = indexer.NewEntityFetcher(
		s.quintyGateway, s.questGateway, s.disputeGateway, s.ipfsEndpoint)
	s.aggregator = indexer.NewAggregator(
		s.fetcher,
		s.quintyGateway, s.questGateway, s.disputeGateway,
		s.bountyRepo, s.questRepo, s.disputeRepo,
		s.searchCaller,
	)
	s.leaderboard = statistic.NewLeaderboard(s.bountyRepo, s.redisClient)
	s.receiptTracker = indexer.NewReceiptTracker(s.ethClient, s.redisClient, s.txRepo, s.publisher)
	s.watcher = indexer.NewWatcher(
		s.ethClient, s.aggregator, s.achievementRepo, s.leaderboard, s.publisher,
		s.contractAddresses(),
	)
}

func (s *srv) contractAddresses() []common.Address {
	contracts := xcontext.Configs(s.ctx).Blockchain.Contracts
	return []common.Address{
		common.HexToAddress(contracts.Quinty),
		common.HexToAddress(contracts.QuestAirdrop),
		common.HexToAddress(contracts.DisputeResolver),
		common.HexToAddress(contracts.ReputationBadge),
	}
}

func (s *srv) loadDomains() {
	s.resolver = client.NewUsernameResolver(client.NewRepositoryNameFetcher(s.userRepo))

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.oauth2Repo, s.twitterEndpoint)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.achievementRepo, s.reputationGateway, s.resolver)
	s.bountyDomain = domain.NewBountyDomain(s.aggregator, s.bountyRepo, s.searchCaller, s.ipfsEndpoint)
	s.questDomain = domain.NewQuestDomain(s.aggregator, s.questRepo, s.searchCaller)
	s.disputeDomain = domain.NewDisputeDomain(s.aggregator, s.disputeRepo)
	s.historyDomain = domain.NewHistoryDomain(s.bountyRepo, s.questRepo)
	s.blockchainDomain = domain.NewBlockchainDomain(s.receiptTracker, s.txRepo, s.userRepo, s.ipfsEndpoint)
	s.fileDomain = domain.NewFileDomain(s.fileStorage)
	s.statisticDomain = statistic.NewDomain(s.leaderboard, s.resolver)
	s.wsDomain = domain.NewWsDomain()
}
