// Package services holds cross-cutting helpers shared by the pipeline stages:
// the error taxonomy used to classify failures against queue statuses, and
// context annotations that let loggers tag lines with the item being
// processed.
package services
