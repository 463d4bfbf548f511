// Package archive persists completed analysis runs to DynamoDB. Archival is
// opt-in and write-only: archived rows are never read back into a session,
// every run still recomputes from scratch.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

const (
	analysisResultsTableName = "AnalysisResults"

	// DynamoDB caps BatchWriteItem at 25 items.
	maxBatchSize = 25
)

type DynamoArchiver struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoArchiver(client *dynamodb.Client) *DynamoArchiver {
	return &DynamoArchiver{client: client, table: analysisResultsTableName}
}

// ArchiveReport batch-writes one row per analyzed record, retrying
// unprocessed items with exponential backoff.
func (a *DynamoArchiver) ArchiveReport(ctx context.Context, report *models.AnalysisReport) error {
	for start := 0; start < len(report.Rows); start += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoArchiver] context canceled")
			return ctx.Err()
		default:
		}

		end := start + maxBatchSize
		if end > len(report.Rows) {
			end = len(report.Rows)
		}

		writeRequests := make([]types.WriteRequest, 0, end-start)
		for i, row := range report.Rows[start:end] {
			item, err := rowToDynamoDBItem(report, start+i, row)
			if err != nil {
				return fmt.Errorf("[DynamoArchiver] Failed to marshal row %d: %w", start+i, err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := a.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				a.table: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoArchiver] Failed to batch write rows: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2

			slog.Warn("[DynamoArchiver] Retrying unprocessed items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[a.table])))

			out, err = a.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoArchiver] Retry error %w", err)
			}

			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoArchiver] Some rows failed after retries",
				slog.Int("remaining", len(out.UnprocessedItems[a.table])))
		}
	}

	slog.Info("[DynamoArchiver] Successfully archived run",
		slog.String("run_id", report.RunID),
		slog.Int("rows", len(report.Rows)))

	return nil
}

type archivedRow struct {
	RunID       string   `dynamodbav:"run_id"`
	RowIndex    int      `dynamodbav:"row_index"`
	Text        string   `dynamodbav:"text"`
	Label       string   `dynamodbav:"label"`
	Score       float64  `dynamodbav:"score"`
	Aspects     []string `dynamodbav:"aspects"`
	Source      string   `dynamodbav:"source,omitempty"`
	CreatedAt   int64    `dynamodbav:"created_at,omitempty"`
	CompletedAt int64    `dynamodbav:"completed_at"`
	TTL         int64    `dynamodbav:"ttl"`
}

func rowToDynamoDBItem(report *models.AnalysisReport, index int, row models.AnalyzedRecord) (map[string]types.AttributeValue, error) {
	archived := archivedRow{
		RunID:       report.RunID,
		RowIndex:    index,
		Text:        row.Text,
		Label:       row.Label,
		Score:       row.Score,
		Aspects:     row.Aspects,
		Source:      row.Source,
		CompletedAt: report.CompletedAt.Unix(),
		TTL:         report.CompletedAt.Add(24 * time.Hour).Unix(),
	}
	if row.CreatedAt != nil {
		archived.CreatedAt = row.CreatedAt.Unix()
	}

	return attributevalue.MarshalMap(archived)
}
