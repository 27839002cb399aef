package schemadb

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"

	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

var (
	// ErrNotFound means no database file exists at the path
	ErrNotFound = errors.New("schema database not found")
	// ErrReadOnly means the database file is not writable
	ErrReadOnly = errors.New("schema database is read only")
	// ErrStale means the database predates non-destructive ID generation and
	// must be regenerated from scratch
	ErrStale = errors.New("schema database is stale")
)

// The database is persisted as a flat, key-sorted form so repeated saves of
// the same logical state are byte comparable.
type persistedActorSubobject struct {
	Name             string
	ClassPath        common.ClassPath
	SchemaComponents common.ComponentIdSet
}

type persistedActor struct {
	ClassPath           common.ClassPath
	GeneratedSchemaName string
	SchemaComponents    common.ComponentIdSet
	Subobjects          []persistedActorSubobject
}

type persistedSubobject struct {
	ClassPath                  common.ClassPath
	GeneratedSchemaName        string
	DynamicSubobjectComponents []common.ComponentIdSet
}

type persistedLevel struct {
	LevelPath   string
	ComponentId common.ComponentId
}

type persistedNetCullDistance struct {
	Distance    float64
	ComponentId common.ComponentId
}

type persistedIdToClass struct {
	ComponentId common.ComponentId
	ClassPath   common.ClassPath
}

type persistedCollision struct {
	SchemaName string
	Classes    []string
}

type persistedDatabase struct {
	NextAvailableComponentId common.ComponentId
	Actors                   []persistedActor
	Subobjects               []persistedSubobject
	Levels                   []persistedLevel
	NetCullDistances         []persistedNetCullDistance
	DataComponentIds         []common.ComponentId
	OwnerOnlyComponentIds    []common.ComponentId
	HandoverComponentIds     []common.ComponentId
	ComponentIdToClassPath   []persistedIdToClass
	Collisions               []persistedCollision
	SchemaDescriptorHash     uint32
}

// Load reads a schema database from fileName. It fails with ErrNotFound when
// no file exists, ErrReadOnly when the file cannot be written back, ErrStale
// when the stale-migration guard trips, and a wrapped decode error when the
// file is corrupt.
func Load(fileName string) (*SchemaDatabase, error) {
	stat, err := os.Stat(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "fail to stat %s", fileName)
	}

	if stat.Mode().Perm()&0200 == 0 {
		return nil, ErrReadOnly
	}

	dataBytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to read %s", fileName)
	}

	var persisted persistedDatabase
	if err := msgpack.Unmarshal(dataBytes, &persisted); err != nil {
		return nil, errors.Wrapf(err, "schema database %s is corrupt", fileName)
	}

	db := fromPersisted(&persisted)

	// Component ID generation was updated to be non-destructive; a database
	// with committed actors but an untouched counter predates that change
	// and must be regenerated (one-time migration guard).
	if len(db.ActorClassPathToSchema) > 0 && db.NextAvailableComponentId == consts.STARTING_GENERATED_COMPONENT_ID {
		return nil, ErrStale
	}

	if consts.DEBUG_SAVE_LOAD {
		sglog.Debugf("Loaded schema database %s: %d actors, %d subobjects, next ID %d",
			fileName, len(db.ActorClassPathToSchema), len(db.SubobjectClassPathToSchema), db.NextAvailableComponentId)
	}
	return db, nil
}

// Save persists the database to fileName all-or-nothing: the flat form is
// written to a temporary file and renamed over the old database, so a failed
// save leaves the previously persisted state untouched. The reverse index is
// rebuilt from the forward tables immediately before writing.
func (db *SchemaDatabase) Save(fileName string) error {
	db.RebuildComponentIdToClassPath()

	dataBytes, err := msgpack.Marshal(db.toPersisted())
	if err != nil {
		return errors.Wrap(err, "fail to encode schema database")
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return errors.Wrapf(err, "fail to create directory for %s", fileName)
	}

	tmpFile := fileName + ".tmp"
	if err := ioutil.WriteFile(tmpFile, dataBytes, 0644); err != nil {
		return errors.Wrapf(err, "unable to save schema database to %s, the file may be locked by another process", fileName)
	}
	if err := os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return errors.Wrapf(err, "unable to save schema database to %s, the file may be locked by another process", fileName)
	}

	if consts.DEBUG_SAVE_LOAD {
		sglog.Debugf("Saved schema database %s: next ID %d", fileName, db.NextAvailableComponentId)
	}
	return nil
}

// Delete removes the persisted database, the operator reset path. Deleting a
// missing database succeeds; a read-only database refuses.
func Delete(fileName string) error {
	stat, err := os.Stat(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "fail to stat %s", fileName)
	}

	if stat.Mode().Perm()&0200 == 0 {
		return errors.Wrapf(ErrReadOnly, "unable to delete schema database at %s", fileName)
	}

	if err := os.Remove(fileName); err != nil {
		return errors.Wrapf(err, "unable to delete schema database at %s", fileName)
	}
	return nil
}

// Exists returns if a persisted database is present at fileName
func Exists(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}

func (db *SchemaDatabase) toPersisted() *persistedDatabase {
	persisted := &persistedDatabase{
		NextAvailableComponentId: db.NextAvailableComponentId,
		SchemaDescriptorHash:     db.SchemaDescriptorHash,
	}

	actorPaths := make([]common.ClassPath, 0, len(db.ActorClassPathToSchema))
	for classPath := range db.ActorClassPathToSchema {
		actorPaths = append(actorPaths, classPath)
	}
	sort.Slice(actorPaths, func(i, j int) bool { return actorPaths[i] < actorPaths[j] })
	for _, classPath := range actorPaths {
		actorData := db.ActorClassPathToSchema[classPath]
		pa := persistedActor{
			ClassPath:           classPath,
			GeneratedSchemaName: actorData.GeneratedSchemaName,
			SchemaComponents:    actorData.SchemaComponents,
		}
		subNames := make([]string, 0, len(actorData.Subobjects))
		for name := range actorData.Subobjects {
			subNames = append(subNames, name)
		}
		sort.Strings(subNames)
		for _, name := range subNames {
			subData := actorData.Subobjects[name]
			pa.Subobjects = append(pa.Subobjects, persistedActorSubobject{
				Name:             name,
				ClassPath:        subData.ClassPath,
				SchemaComponents: subData.SchemaComponents,
			})
		}
		persisted.Actors = append(persisted.Actors, pa)
	}

	subPaths := make([]common.ClassPath, 0, len(db.SubobjectClassPathToSchema))
	for classPath := range db.SubobjectClassPathToSchema {
		subPaths = append(subPaths, classPath)
	}
	sort.Slice(subPaths, func(i, j int) bool { return subPaths[i] < subPaths[j] })
	for _, classPath := range subPaths {
		subData := db.SubobjectClassPathToSchema[classPath]
		persisted.Subobjects = append(persisted.Subobjects, persistedSubobject{
			ClassPath:                  classPath,
			GeneratedSchemaName:        subData.GeneratedSchemaName,
			DynamicSubobjectComponents: subData.DynamicSubobjectComponents,
		})
	}

	levelPaths := make([]string, 0, len(db.LevelPathToComponentId))
	for levelPath := range db.LevelPathToComponentId {
		levelPaths = append(levelPaths, levelPath)
	}
	sort.Strings(levelPaths)
	for _, levelPath := range levelPaths {
		persisted.Levels = append(persisted.Levels, persistedLevel{
			LevelPath:   levelPath,
			ComponentId: db.LevelPathToComponentId[levelPath],
		})
	}

	distances := make([]float64, 0, len(db.NetCullDistanceToComponentId))
	for distance := range db.NetCullDistanceToComponentId {
		distances = append(distances, distance)
	}
	sort.Float64s(distances)
	for _, distance := range distances {
		persisted.NetCullDistances = append(persisted.NetCullDistances, persistedNetCullDistance{
			Distance:    distance,
			ComponentId: db.NetCullDistanceToComponentId[distance],
		})
	}

	persisted.DataComponentIds = db.CategoryToComponents[common.SchemaData].SortedList()
	persisted.OwnerOnlyComponentIds = db.CategoryToComponents[common.SchemaOwnerOnly].SortedList()
	persisted.HandoverComponentIds = db.CategoryToComponents[common.SchemaHandover].SortedList()

	ids := make([]common.ComponentId, 0, len(db.ComponentIdToClassPath))
	for id := range db.ComponentIdToClassPath {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		persisted.ComponentIdToClassPath = append(persisted.ComponentIdToClassPath, persistedIdToClass{
			ComponentId: id,
			ClassPath:   db.ComponentIdToClassPath[id],
		})
	}

	collisionNames := make([]string, 0, len(db.PotentialSchemaNameCollisions))
	for name := range db.PotentialSchemaNameCollisions {
		collisionNames = append(collisionNames, name)
	}
	sort.Strings(collisionNames)
	for _, name := range collisionNames {
		persisted.Collisions = append(persisted.Collisions, persistedCollision{
			SchemaName: name,
			Classes:    db.PotentialSchemaNameCollisions[name],
		})
	}

	return persisted
}

func fromPersisted(persisted *persistedDatabase) *SchemaDatabase {
	db := New()
	db.NextAvailableComponentId = persisted.NextAvailableComponentId
	db.SchemaDescriptorHash = persisted.SchemaDescriptorHash

	for _, pa := range persisted.Actors {
		actorData := &ActorSchemaData{
			GeneratedSchemaName: pa.GeneratedSchemaName,
			SchemaComponents:    pa.SchemaComponents,
			Subobjects:          map[string]*ActorSubobjectData{},
		}
		for _, ps := range pa.Subobjects {
			actorData.Subobjects[ps.Name] = &ActorSubobjectData{
				ClassPath:        ps.ClassPath,
				SchemaComponents: ps.SchemaComponents,
			}
		}
		db.ActorClassPathToSchema[pa.ClassPath] = actorData
	}

	for _, ps := range persisted.Subobjects {
		db.SubobjectClassPathToSchema[ps.ClassPath] = &SubobjectSchemaData{
			GeneratedSchemaName:        ps.GeneratedSchemaName,
			DynamicSubobjectComponents: ps.DynamicSubobjectComponents,
		}
	}

	for _, pl := range persisted.Levels {
		db.LevelPathToComponentId[pl.LevelPath] = pl.ComponentId
	}

	for _, pn := range persisted.NetCullDistances {
		db.NetCullDistanceToComponentId[pn.Distance] = pn.ComponentId
	}

	for _, id := range persisted.DataComponentIds {
		db.CategoryToComponents[common.SchemaData].Add(id)
	}
	for _, id := range persisted.OwnerOnlyComponentIds {
		db.CategoryToComponents[common.SchemaOwnerOnly].Add(id)
	}
	for _, id := range persisted.HandoverComponentIds {
		db.CategoryToComponents[common.SchemaHandover].Add(id)
	}

	for _, pi := range persisted.ComponentIdToClassPath {
		db.ComponentIdToClassPath[pi.ComponentId] = pi.ClassPath
	}

	for _, pc := range persisted.Collisions {
		db.PotentialSchemaNameCollisions[pc.SchemaName] = pc.Classes
	}

	return db
}
