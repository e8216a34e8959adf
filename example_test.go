package mochow_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/mochow"
	"github.com/hupe1980/mochow/auth"
	"github.com/hupe1980/mochow/model"
)

// Example demonstrates creating a client and listing databases.
func Example() {
	config := mochow.NewConfiguration(auth.New("root", "your-api-key"), "http://127.0.0.1:5287")

	client, err := mochow.NewClient(config)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	names, err := client.ListDatabases(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(names)
}

// Example_createTable demonstrates creating a table with a vector index
// and waiting until it is ready.
func Example_createTable() {
	config := mochow.NewConfiguration(auth.New("root", "your-api-key"), "http://127.0.0.1:5287")

	client, err := mochow.NewClient(config)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.CreateDatabase(ctx, "knowledge"); err != nil {
		log.Fatal(err)
	}

	db, err := client.Database(ctx, "knowledge")
	if err != nil {
		log.Fatal(err)
	}

	_, err = db.CreateTable(ctx, &mochow.CreateTableArgs{
		Table:       "chunks",
		Replication: 3,
		Partition:   model.NewHashPartition(10),
		Schema: &model.Schema{
			Fields: []model.Field{
				{FieldName: "id", FieldType: model.FieldTypeString, PrimaryKey: true, PartitionKey: true, NotNull: true},
				{FieldName: "content", FieldType: model.FieldTypeText, NotNull: true},
				{FieldName: "embedding", FieldType: model.FieldTypeFloatVector, NotNull: true, Dimension: 768},
			},
			Indexes: []model.Index{
				&model.VectorIndex{
					IndexName:  "vector_idx",
					IndexType:  model.IndexTypeHNSW,
					Field:      "embedding",
					MetricType: model.MetricTypeL2,
					Params:     &model.HNSWParams{M: 32, EfConstruction: 200},
				},
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Table creation is asynchronous; poll until it goes NORMAL.
	for {
		desc, err := db.DescribeTable(ctx, "chunks")
		if err != nil {
			log.Fatal(err)
		}
		if desc.State == model.TableStateNormal {
			break
		}
		time.Sleep(time.Second)
	}
	fmt.Println("table ready")
}

// Example_vectorSearch demonstrates a top-k vector search with a filter.
func Example_vectorSearch() {
	config := mochow.NewConfiguration(auth.New("root", "your-api-key"), "http://127.0.0.1:5287")

	client, err := mochow.NewClient(config)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	db, err := client.Database(ctx, "knowledge")
	if err != nil {
		log.Fatal(err)
	}
	table, err := db.Table(ctx, "chunks")
	if err != nil {
		log.Fatal(err)
	}

	resp, err := table.VectorSearch(ctx, &model.VectorTopkSearchRequest{
		VectorField: "embedding",
		Vector:      model.FloatVector{0.1, 0.2, 0.3},
		Limit:       10,
		Filter:      "kb_id = 'kb1'",
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, row := range resp.Rows {
		fmt.Println(row.Row["content"], row.Distance)
	}
}
