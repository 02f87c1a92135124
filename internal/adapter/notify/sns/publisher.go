// Package sns delivers threshold alerts through an Amazon SNS topic with
// one email subscription per user. Subscriptions carry a filter policy on
// the user_id message attribute, so a published alert reaches only its
// owner.
package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	userIDAttribute     = "user_id"
	protocolEmail       = "email"
	pendingConfirmation = "PendingConfirmation"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Subscribe(ctx context.Context, in *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, in *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error)
	Unsubscribe(ctx context.Context, in *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error)
}

// Publisher sends alerts and manages email subscriptions on one topic.
type Publisher struct {
	api      snsAPI
	topicARN string
	log      *slog.Logger
}

// New loads the default AWS credential chain for region and returns a
// Publisher for topicARN. A non-empty endpoint overrides the service URL
// (LocalStack and similar).
func New(ctx context.Context, region, topicARN, endpoint string, logger *slog.Logger) (*Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newPublisher(client, topicARN, logger), nil
}

func newPublisher(api snsAPI, topicARN string, logger *slog.Logger) *Publisher {
	return &Publisher{
		api:      api,
		topicARN: topicARN,
		log:      logger.With("adapter", "sns"),
	}
}

// Publish sends alert to the topic, tagged with the owner's user id.
func (p *Publisher) Publish(ctx context.Context, alert domain.Alert) error {
	out, err := p.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(alert.Subject),
		Message:  aws.String(alert.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			userIDAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(alert.UserID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	p.log.DebugContext(ctx, "alert published",
		slog.String("user_id", alert.UserID),
		slog.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

// Subscribe registers email for the user's alerts. SNS sends the address a
// confirmation mail; nothing is delivered until it is confirmed.
func (p *Publisher) Subscribe(ctx context.Context, userID, email string) error {
	policy, err := json.Marshal(map[string][]string{userIDAttribute: {userID}})
	if err != nil {
		return fmt.Errorf("sns filter policy: %w", err)
	}

	out, err := p.api.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(p.topicARN),
		Protocol: aws.String(protocolEmail),
		Endpoint: aws.String(email),
		Attributes: map[string]string{
			"FilterPolicy": string(policy),
		},
		ReturnSubscriptionArn: true,
	})
	if err != nil {
		return fmt.Errorf("sns subscribe: %w", err)
	}

	p.log.InfoContext(ctx, "email subscribed",
		slog.String("user_id", userID),
		slog.String("subscription_arn", aws.ToString(out.SubscriptionArn)),
	)
	return nil
}

// Unsubscribe removes every confirmed email subscription for email.
// Pending subscriptions have no ARN yet and are left to expire. Finding
// nothing is not an error.
func (p *Publisher) Unsubscribe(ctx context.Context, email string) error {
	arns, err := p.findSubscriptions(ctx, email)
	if err != nil {
		return err
	}

	for _, arn := range arns {
		if _, err := p.api.Unsubscribe(ctx, &sns.UnsubscribeInput{SubscriptionArn: aws.String(arn)}); err != nil {
			return fmt.Errorf("sns unsubscribe: %w", err)
		}
	}

	if len(arns) > 0 {
		p.log.InfoContext(ctx, "email unsubscribed", slog.Int("subscriptions", len(arns)))
	}
	return nil
}

func (p *Publisher) findSubscriptions(ctx context.Context, email string) ([]string, error) {
	var (
		arns  []string
		token *string
	)
	for {
		out, err := p.api.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{
			TopicArn:  aws.String(p.topicARN),
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("sns list subscriptions: %w", err)
		}

		for _, sub := range out.Subscriptions {
			if aws.ToString(sub.Protocol) != protocolEmail {
				continue
			}
			if !strings.EqualFold(aws.ToString(sub.Endpoint), email) {
				continue
			}
			arn := aws.ToString(sub.SubscriptionArn)
			if arn == "" || arn == pendingConfirmation {
				continue
			}
			arns = append(arns, arn)
		}

		if aws.ToString(out.NextToken) == "" {
			return arns, nil
		}
		token = out.NextToken
	}
}
