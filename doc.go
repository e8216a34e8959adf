// Package mochow provides a Go client SDK for the Mochow vector
// database service.
//
// Every request is signed, sent over pooled connections and retried
// with exponential backoff when the failure is transient. The API is
// organized around three handles: Client for databases, Database for
// tables and Table for rows, searches and indexes.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	config := mochow.NewConfiguration(
//	    auth.New("root", "your-api-key"),
//	    "http://127.0.0.1:5287",
//	)
//	client, _ := mochow.NewClient(config)
//	defer client.Close()
//
//	_ = client.CreateDatabase(ctx, "document")
//	db, _ := client.Database(ctx, "document")
//
// # Tables
//
// A table is created with a schema and a hash partition. Creation is
// asynchronous; poll DescribeTable until the state is normal:
//
//	table, _ := db.CreateTable(ctx, &mochow.CreateTableArgs{
//	    Table:       "chunks",
//	    Replication: 3,
//	    Partition:   model.NewHashPartition(1),
//	    Schema:      schema,
//	})
//	for {
//	    desc, _ := db.DescribeTable(ctx, "chunks")
//	    if desc.State == model.TableStateNormal {
//	        break
//	    }
//	    time.Sleep(time.Second)
//	}
//
// # Rows and Search
//
//	_, _ = table.Upsert(ctx, rows)
//
//	resp, _ := table.VectorSearch(ctx, &model.VectorTopkSearchRequest{
//	    VectorField: "embedding",
//	    Vector:      model.FloatVector(query),
//	    Limit:       10,
//	})
//
// Vector, BM25 and hybrid searches share one result shape; batch
// searches return one result group per query vector.
//
// # Errors
//
// Failures surface as *ClientError (caller mistakes, never retried) or
// *ServerError (service failures with HTTP status, service code and
// request id):
//
//	if serverErr, ok := mochow.AsServerError(err); ok {
//	    if serverErr.Code == model.TableNotExist {
//	        // create the table first
//	    }
//	}
package mochow
