package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewRequestID generates a KSUID string used to tag each HTTP request.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewRecordID generates a snowflake ID string for stored records, using the
// node ID from SNOWFLAKE_NODE (default 1).
func NewRecordID() string {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = n
		}
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		// snowflake node ids are range-limited; fall back to a KSUID so a
		// unique ID is still produced
		return ksuid.New().String()
	}
	return node.Generate().String()
}
