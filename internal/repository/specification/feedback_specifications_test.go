package specification

import (
	"testing"

	"contract-workflow-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackSpecifications(t *testing.T) {
	db := dryRunDB(t)

	var rows []model.ContractFeedback
	stmt := All(db.Model(&model.ContractFeedback{}),
		ByContractId{ContractId: "c-1"},
		NewestSubmittedFirst{},
	).Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "contract_feedback" WHERE contract_id = $1`)
	assert.Contains(t, sql, "ORDER BY submitted_at DESC")
	assert.Equal(t, []interface{}{"c-1"}, stmt.Vars)
}
