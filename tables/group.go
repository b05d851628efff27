package tables

import (
	"github.com/google/uuid"

	"github.com/tsawler/gridtable/model"
)

// groupNamespace scopes table group IDs derived from table IDs
var groupNamespace = uuid.MustParse("8f4b2c1e-6a7d-4e53-9c0b-2d61f5a3e7b9")

// GroupID returns the group every element of the table is placed in. It is
// derived from the table ID, so regrouping a table always yields the same
// group and an unchanged table stays byte-identical.
func GroupID(tableID string) string {
	return uuid.NewSHA1(groupNamespace, []byte(tableID)).String()
}

// NewID allocates a fresh table or element identifier
func NewID() string {
	return uuid.NewString()
}

// detached clears group membership on the elements while fn runs, then
// places all of them in groupID whatever fn returns
func detached(elements []*model.Element, groupID string, fn func() error) error {
	for _, el := range elements {
		el.GroupIDs = nil
	}
	defer func() {
		for _, el := range elements {
			el.GroupIDs = []string{groupID}
		}
	}()
	return fn()
}
