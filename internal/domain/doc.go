// Package domain contains the core business entities, value objects, and
// domain logic of the task board. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The workflow vocabulary (task status, task priority, the seeded workflow
// buckets and user roles) is modelled as closed enumerations with exhaustive
// mapping tables, so that unknown values take an explicit default path.
package domain
