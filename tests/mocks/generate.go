// Package mocks holds gomock doubles for the grader's interfaces.
package mocks

//go:generate mockgen -destination=executor_mock.go -package=mocks github.com/mini-maxit/grader/internal/stages/executor Executor
//go:generate mockgen -destination=compiler_mock.go -package=mocks github.com/mini-maxit/grader/internal/stages/compiler Compiler
//go:generate mockgen -destination=runner_mock.go -package=mocks github.com/mini-maxit/grader/internal/runner Runner
//go:generate mockgen -destination=grader_mock.go -package=mocks github.com/mini-maxit/grader/internal/grader Grader
//go:generate mockgen -destination=worker_mock.go -package=mocks github.com/mini-maxit/grader/internal/pipeline Worker
//go:generate mockgen -destination=scheduler_mock.go -package=mocks github.com/mini-maxit/grader/internal/scheduler Scheduler
//go:generate mockgen -destination=responder_mock.go -package=mocks github.com/mini-maxit/grader/internal/rabbitmq/responder Responder
//go:generate mockgen -destination=channel_mock.go -package=mocks github.com/mini-maxit/grader/internal/rabbitmq/channel Channel
