package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/model"
)

const tableName = "markovmusic-sources"

// dynamo BatchGetItem takes at most 100 keys; stay well under it
const batchSize = 25

// GetSourceMetadatas looks up curation metadata (artist, title, suggested
// training weight) for corpus files, keyed by filename. Files with no
// record are simply absent from the result.
func GetSourceMetadatas(filenames []string) map[string]model.SourceMetadata {
	res := make(map[string]model.SourceMetadata)
	if len(filenames) == 0 {
		return res
	}

	endpoint := constants.GetSourceDbEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}
	client := dynamodb.New(sess)

	for start := 0; start < len(filenames); start += batchSize {
		end := start + batchSize
		if end > len(filenames) {
			end = len(filenames)
		}
		fetchBatch(client, filenames[start:end], res)
	}
	return res
}

func fetchBatch(client *dynamodb.DynamoDB, filenames []string, res map[string]model.SourceMetadata) {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			tableName: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[tableName] {
		var s model.SourceMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Weight"] != nil && v["Weight"].N != nil {
			s.Weight, _ = strconv.ParseFloat(*v["Weight"].N, 64)
		}
		if v["Artist"] != nil && v["Artist"].S != nil {
			s.Artist = *v["Artist"].S
		}
		if v["Release"] != nil && v["Release"].S != nil {
			s.Release = *v["Release"].S
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		res[*v["PK"].S] = s
	}
}
