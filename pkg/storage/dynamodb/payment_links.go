package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

const linkIdIndex = "link_id-index"

// linkSlugLength is the length of the public shareable slug.
const linkSlugLength = 8

// CreatePaymentLink creates a new active link for a merchant. The public
// slug is the first segment of a fresh UUID, short enough to share by hand.
func (s *Store) CreatePaymentLink(ctx context.Context, link *models.PaymentLink) (*models.PaymentLink, error) {
	if link.Id == "" {
		link.Id = uuid.New().String()
	}
	if link.LinkId == "" {
		link.LinkId = strings.ReplaceAll(uuid.New().String(), "-", "")[:linkSlugLength]
	}
	link.Status = models.LinkActive
	link.CreatedAt = time.Now().UTC()
	// Timestamps are stored as RFC 3339 strings and compared lexically by
	// the expiry sweep, so every stored instant must share the UTC offset.
	if link.Expiry != nil {
		utc := link.Expiry.UTC()
		link.Expiry = &utc
	}
	if link.Currency == "" {
		link.Currency = models.DefaultCurrency
	}

	linkAV, err := attributevalue.MarshalMap(link)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment link: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.PaymentLinks),
		Item:                linkAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put payment link: %w", err)
	}

	return link, nil
}

// GetPaymentLinkByLinkId retrieves a link by its public slug. An active link
// whose expiry has passed is flipped to expired on read and returned
// alongside ErrLinkExpired, so readers and the sweep always agree.
func (s *Store) GetPaymentLinkByLinkId(ctx context.Context, linkID string) (*models.PaymentLink, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.PaymentLinks),
		IndexName:              aws.String(linkIdIndex),
		KeyConditionExpression: aws.String("link_id = :link_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":link_id": &types.AttributeValueMemberS{Value: linkID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query payment link: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("payment link %s: %w", linkID, storage.ErrLinkNotFound)
	}

	link := &models.PaymentLink{}
	if err := attributevalue.UnmarshalMap(out.Items[0], link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment link: %w", err)
	}

	if link.Status == models.LinkActive && link.Expired(time.Now().UTC()) {
		if err := s.ExpirePaymentLink(ctx, link.Id); err != nil {
			return nil, err
		}
		link.Status = models.LinkExpired
		return link, storage.ErrLinkExpired
	}

	return link, nil
}

// ListOverdueActiveLinks retrieves active links whose expiry is before the
// cutoff, for the scheduled expiry sweep.
func (s *Store) ListOverdueActiveLinks(ctx context.Context, cutoff time.Time) ([]models.PaymentLink, error) {
	cutoffAV, err := attributevalue.Marshal(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff: %w", err)
	}

	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.PaymentLinks),
		FilterExpression: aws.String("#status = :active AND expiry < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(models.LinkActive)},
			":cutoff": cutoffAV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan overdue payment links: %w", err)
	}

	links := []models.PaymentLink{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &links); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment links: %w", err)
	}
	return links, nil
}

// ExpirePaymentLink flips an active link to expired. A link that has already
// been used or expired is left untouched.
func (s *Store) ExpirePaymentLink(ctx context.Context, id string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.PaymentLinks),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		UpdateExpression:    aws.String("SET #status = :expired"),
		ConditionExpression: aws.String("#status = :active"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberS{Value: string(models.LinkExpired)},
			":active":  &types.AttributeValueMemberS{Value: string(models.LinkActive)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return fmt.Errorf("failed to expire payment link: %w", err)
	}
	return nil
}

// getPaymentLink retrieves a link by its internal id.
func (s *Store) getPaymentLink(ctx context.Context, id string) (*models.PaymentLink, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.PaymentLinks),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payment link: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("payment link %s: %w", id, storage.ErrLinkNotFound)
	}

	link := &models.PaymentLink{}
	if err := attributevalue.UnmarshalMap(out.Item, link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment link: %w", err)
	}
	return link, nil
}
