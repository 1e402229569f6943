package services

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxPageSize = 100

func coll(client *mongo.Client, dbName, name string) *mongo.Collection {
	return client.Database(dbName).Collection(name)
}

// pagination reads skip/limit query parameters, falling back to 0 and
// the endpoint's default. Limit is clamped to maxPageSize.
func pagination(c *gin.Context, defaultLimit int64) (int64, int64) {
	skip := int64(0)
	if v, err := strconv.ParseInt(c.Query("skip"), 10, 64); err == nil && v > 0 {
		skip = v
	}
	limit := defaultLimit
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}
