// Package kg provides types, interfaces, and helpers for working with the
// EBRAINS Knowledge Graph core API (v3-beta).
//
// # Overview
//
// The kg package defines the result shapes (Result, ResultPage, ResultsByID),
// the domain types (Instance, SpaceInformation, TypeInformation, User) and the
// interfaces of the resource clients (InstancesClient, SpacesClient, ...). The
// concrete client is built by the kgclient package, which wires the base URL,
// the token providers and the transport.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/kg-client/pkg/kg"
//	  "github.com/fivetwenty-io/kg-client/pkg/kgclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := kgclient.NewWithToken(ctx, "core.kg.ebrains.eu", os.Getenv("KG_TOKEN"))
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Instances().List(ctx, "https://openminds.ebrains.eu/core/Dataset", nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Results
//
// Every response carries metadata (message, timing, transaction id) and at
// most one KGError. Operations return the typed result together with that
// error so callers can use ordinary error handling while the metadata stays
// reachable. A response with an "error" object is a failure even when its
// status code is 2xx.
//
// # Pagination
//
// A ResultPage remembers the request that produced it. NextPage re-issues it
// for the following window; Iterator and Items walk all items lazily and stop
// at the first failing page:
//
//	for dataset, err := range page.Items(ctx) {
//	  if err != nil { return err }
//	  _ = dataset
//	}
//
// # Identifiers
//
// Instance identifiers are IRIs under a namespace, by default
// https://kg.ebrains.eu/api/instances/. Instance.UUID holds the short form;
// ToUUID, AbsoluteID and UUIDFromAbsoluteID convert between both.
package kg
