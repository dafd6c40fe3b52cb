package studioconfig

import "github.com/lashroom/scheduling-service/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов к базе данных
type DBExecutor = dbmetrics.DBExecutor
