// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package usecase reconciles collections fetched from the LMS API with the
// local cache.
//
// A reconciliation pass is driven by a [Reconciler], which says which local
// models the pass owns ([Reconciler.Scope]), which local model represents a
// given remote item ([Reconciler.ItemPredicate]) and how an item's fields are
// applied to it ([Reconciler.UpdateModel]). [Reconcile] runs one pass inside a
// [store.Tx]: after it, the models in scope mirror the remote collection
// exactly. Models outside the scope are never touched.
//
// [CollectionUseCase] couples a reconciler with the remote fetch and the
// commit. Errors of individual items do not abort the pass; they are
// collected in [Result].
package usecase
