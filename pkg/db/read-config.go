package db

import (
	"fmt"
)

const (
	DEFAULT_DB_NAME         = "brandHealthDB"
	DEFAULT_TIMEOUT_SECONDS = 30
)

// DBConfigFromYamlObj builds the connection config. Credentials are optional so a local
// mongod without auth can be used.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	var URI string
	if yamlObj.Username != "" {
		URI = fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	} else {
		URI = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	dbName := yamlObj.DBName
	if dbName == "" {
		dbName = DEFAULT_DB_NAME
	}

	timeout := yamlObj.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT_SECONDS
	}

	maxPoolSize := uint64(0)
	if yamlObj.MaxPoolSize > 0 {
		maxPoolSize = uint64(yamlObj.MaxPoolSize)
	}

	return DBConfig{
		URI:              URI,
		DBName:           dbName,
		Timeout:          timeout,
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		MaxPoolSize:      maxPoolSize,
		NoCursorTimeout:  yamlObj.UseNoCursorTimeout,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
