package log

//go:generate mockgen -source=logger.go -destination=../../generated/mocks/mock_logger.go -package=mocks Logger
