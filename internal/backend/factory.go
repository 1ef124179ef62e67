package backend

import (
	"context"
	"fmt"

	"shiftlog/internal/events"
	"shiftlog/internal/log"
	"shiftlog/internal/storage"
	"shiftlog/internal/storage/kv"
	"shiftlog/internal/storage/sqlite"
)

// amqpConnectAttempts bounds the startup dial; later publishes redial lazily.
const amqpConnectAttempts = 3

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo, err := f.createRepository(config)
	if err != nil {
		return nil, err
	}
	publisher := f.createPublisher(ctx, config)

	return &BackendResult{
		Repository: repo,
		Publisher:  publisher,
	}, nil
}

func (f *DefaultFactory) createRepository(config Config) (storage.Repository, error) {
	switch config.Type {
	case SQLiteBackend:
		repo, err := sqlite.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)
		return repo, nil

	case FileBackend:
		repo, err := kv.NewFile(config.DataDirectory, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file repository: %w", err)
		}
		f.logger.Info("Initialized file backend", log.FieldPath, config.DataDirectory)
		return repo, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return kv.NewMemory(f.logger), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// createPublisher never fails: without a reachable broker the tracker still
// works and the client keeps retrying behind its circuit breaker.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) events.Publisher {
	if config.AMQPURL == "" {
		return events.Nop{}
	}

	client := events.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey, f.logger)
	if err := client.Connect(ctx, amqpConnectAttempts); err != nil {
		f.logger.Warn("Failed to connect to AMQP, events will be retried on publish", log.FieldError, err)
	} else {
		f.logger.Info("Initialized AMQP client",
			"exchange", config.AMQPExchange,
			"routing_key", config.AMQPRoutingKey)
	}
	return client
}
