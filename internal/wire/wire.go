package wire

import (
	"Plaza/internal/api"
	"Plaza/internal/api/config"
	"Plaza/internal/api/handler"
	"Plaza/internal/job"
	"Plaza/internal/pkg/cron"
	"Plaza/internal/pkg/hub"
	"Plaza/internal/pkg/kafka"
	pmongo "Plaza/internal/pkg/mongo"
	"Plaza/internal/repository"
	"Plaza/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer bundles the top level components of the process.
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Hub          *hub.Hub
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	postActionRepo := repository.NewPostActionRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	reviewRepo := pmongo.NewReviewRepo(mongoDB)

	streamHub := hub.NewHub()

	notificationService := service.NewNotificationService(notificationRepo, userRepo, postRepo, streamHub)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, userRepo, reviewRepo)
	postActionService := service.NewPostActionService(postActionRepo, postRepo, userRepo, reviewRepo, notificationService)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo, notificationService)
	reviewService := service.NewReviewService(reviewRepo, postRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		PostHandler:         handler.NewPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(postActionService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		ReviewHandler:       handler.NewReviewHandler(reviewService),
		StreamHandler:       handler.NewStreamHandler(streamHub),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationService)
	if err != nil {
		return nil, err
	}

	sweepJob := job.NewNotificationSweepJob(notificationService)
	cronMgr := cron.NewCronManager(sweepJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Hub:          streamHub,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
